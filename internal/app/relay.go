package app

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tanishqmanglor/nexmeet/internal/core"
	"github.com/tanishqmanglor/nexmeet/internal/domain"
)

const DefaultChatTimeFormat = "3:04:05 PM"

// Outbox delivers one event to one session. Delivery to an unknown or
// closed session returns false and is otherwise a no-op.
type Outbox interface {
	Deliver(to core.SessionID, msg core.Outbound) bool
}

// Relay routes signaling payloads between sessions. Payloads are forwarded
// verbatim; unreachable targets are dropped without telling the sender.
type Relay struct {
	reg     *Registry
	members *Membership
	out     Outbox

	Now        func() time.Time
	TimeFormat string
}

func NewRelay(reg *Registry, members *Membership, out Outbox) *Relay {
	return &Relay{
		reg:        reg,
		members:    members,
		out:        out,
		Now:        time.Now,
		TimeFormat: DefaultChatTimeFormat,
	}
}

func (r *Relay) RelayOffer(from core.SessionID, target domain.Identity, offer json.RawMessage) bool {
	sender, _ := r.reg.LookupIdentity(from)
	return r.toIdentity(from, target, core.Outbound{
		Type:    core.EventIncomingCall,
		Payload: core.IncomingCall{From: sender, Offer: offer},
	})
}

func (r *Relay) RelayAnswer(from core.SessionID, target domain.Identity, answer json.RawMessage) bool {
	return r.toIdentity(from, target, core.Outbound{
		Type:    core.EventCallAccepted,
		Payload: core.CallAccepted{Answer: answer},
	})
}

func (r *Relay) RelayCandidate(from core.SessionID, target domain.Identity, candidate json.RawMessage) bool {
	return r.toIdentity(from, target, core.Outbound{
		Type:    core.EventICECandidate,
		Payload: core.ICECandidate{Candidate: candidate},
	})
}

func (r *Relay) toIdentity(from core.SessionID, target domain.Identity, msg core.Outbound) bool {
	sid, ok := r.reg.LookupSession(target)
	if !ok {
		log.Debug().Str("module", "app.relay").Str("sid", string(from)).Str("target", string(target)).
			Str("type", string(msg.Type)).Msg("target not registered, dropped")
		return false
	}
	return r.out.Deliver(sid, msg)
}

// BroadcastChatMessage returns the number of occupants reached.
func (r *Relay) BroadcastChatMessage(from core.SessionID, text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	return r.toRoomMates(from, func(sender domain.Identity) core.Outbound {
		return core.Outbound{
			Type: core.EventReceiveMessage,
			Payload: core.ReceiveMessage{
				Sender:  sender,
				Message: text,
				Time:    r.Now().Format(r.TimeFormat),
			},
		}
	})
}

func (r *Relay) BroadcastHandState(from core.SessionID, raised bool) int {
	return r.toRoomMates(from, func(sender domain.Identity) core.Outbound {
		return core.Outbound{
			Type:    core.EventRemoteHand,
			Payload: core.RemoteHand{Sender: sender, State: raised},
		}
	})
}

func (r *Relay) toRoomMates(from core.SessionID, build func(sender domain.Identity) core.Outbound) int {
	room, ok := r.reg.GetRoom(from)
	if !ok {
		return 0
	}
	sender, _ := r.reg.LookupIdentity(from)
	msg := build(sender)
	sent := 0
	for _, m := range r.members.MembersOf(room, from) {
		if r.out.Deliver(m.SID, msg) {
			sent++
		}
	}
	return sent
}

// AnnounceJoin tells the joiner who is present, then tells the occupants
// about the joiner, then confirms the join.
func (r *Relay) AnnounceJoin(sid core.SessionID, room domain.RoomID, existing []core.Member) {
	identity, _ := r.reg.LookupIdentity(sid)
	users := make([]domain.Identity, 0, len(existing))
	for _, m := range existing {
		users = append(users, m.Identity)
	}
	r.out.Deliver(sid, core.Outbound{Type: core.EventAllUsers, Payload: core.AllUsers{Users: users}})
	for _, m := range existing {
		r.out.Deliver(m.SID, core.Outbound{Type: core.EventUserJoined, Payload: core.UserJoined{EmailID: identity}})
	}
	r.out.Deliver(sid, core.Outbound{Type: core.EventJoinedRoom, Payload: core.JoinedRoom{RoomID: room}})
}

func (r *Relay) RejectJoin(sid core.SessionID, room domain.RoomID) {
	r.out.Deliver(sid, core.Outbound{Type: core.EventRoomFull, Payload: core.RoomFull{RoomID: room}})
}

// AnnounceDisconnect notifies the remaining occupants, then evicts sid.
func (r *Relay) AnnounceDisconnect(sid core.SessionID) Eviction {
	if room, ok := r.reg.GetRoom(sid); ok {
		identity, _ := r.reg.LookupIdentity(sid)
		msg := core.Outbound{Type: core.EventUserDisconnected, Payload: core.UserDisconnected{EmailID: identity}}
		for _, m := range r.members.MembersOf(room, sid) {
			r.out.Deliver(m.SID, msg)
		}
	}
	return r.members.Remove(sid)
}
