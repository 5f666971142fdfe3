package orch

import (
	"github.com/rs/zerolog/log"
	"github.com/tanishqmanglor/nexmeet/internal/app"
	"github.com/tanishqmanglor/nexmeet/internal/core"
	"github.com/tanishqmanglor/nexmeet/internal/domain"
)

func (o *Orchestrator) handleJoin(ev Event) {
	var p core.JoinRoomPayload
	if !decode(ev, &p) {
		return
	}
	room, err := domain.ParseRoomID(p.RoomID)
	if err != nil {
		log.Warn().Err(err).Str("module", "orch").Str("sid", string(ev.SID)).Msg("join dropped")
		return
	}
	identity, err := domain.ParseIdentity(p.EmailID)
	if err != nil {
		log.Warn().Err(err).Str("module", "orch").Str("sid", string(ev.SID)).Msg("join dropped")
		return
	}

	// Joined sessions stay put until they disconnect. A repeat join for the
	// current room is counted like any other and is full once a peer is in.
	if current, ok := o.Registry.GetRoom(ev.SID); ok && current != room {
		log.Warn().Str("module", "orch").Str("sid", string(ev.SID)).Str("room", string(current)).
			Str("requested", string(room)).Msg("already joined, room switch dropped")
		return
	}

	res := o.Admission.TryJoin(ev.SID, identity, room)
	if res.Outcome == app.JoinRejected {
		o.Relay.RejectJoin(ev.SID, room)
		return
	}
	if res.Replaced.Found {
		log.Info().Str("module", "orch").Str("sid", string(ev.SID)).Str("stale_sid", string(res.Replaced.SID)).
			Str("identity", string(identity)).Msg("identity rejoined from new session")
	}
	o.Relay.AnnounceJoin(ev.SID, room, res.Existing)
}

func (o *Orchestrator) handleDisconnect(ev Event) {
	evicted := o.Relay.AnnounceDisconnect(ev.SID)
	if conn, ok := o.conns[ev.SID]; ok {
		delete(o.conns, ev.SID)
		o.connected.Add(-1)
		conn.Close()
	}
	log.Info().Str("module", "orch").Str("sid", string(ev.SID)).Str("identity", string(evicted.Identity)).
		Str("room", string(evicted.Room)).Msg("disconnected")
}
