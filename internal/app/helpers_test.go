package app

import (
	"sync"

	"github.com/tanishqmanglor/nexmeet/internal/core"
)

type delivery struct {
	To  core.SessionID
	Msg core.Outbound
}

// recordingOutbox delivers only to sessions marked live.
type recordingOutbox struct {
	mu   sync.Mutex
	live map[core.SessionID]bool
	sent []delivery
}

func newRecordingOutbox(live ...core.SessionID) *recordingOutbox {
	o := &recordingOutbox{live: make(map[core.SessionID]bool)}
	for _, sid := range live {
		o.live[sid] = true
	}
	return o
}

func (o *recordingOutbox) Deliver(to core.SessionID, msg core.Outbound) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.live[to] {
		return false
	}
	o.sent = append(o.sent, delivery{To: to, Msg: msg})
	return true
}

func (o *recordingOutbox) to(sid core.SessionID) []core.Outbound {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []core.Outbound
	for _, d := range o.sent {
		if d.To == sid {
			out = append(out, d.Msg)
		}
	}
	return out
}

func (o *recordingOutbox) reset() {
	o.mu.Lock()
	o.sent = nil
	o.mu.Unlock()
}

type fixture struct {
	reg       *Registry
	members   *Membership
	admission *Admission
	relay     *Relay
	out       *recordingOutbox
}

func newFixture(live ...core.SessionID) *fixture {
	reg := NewRegistry()
	members := NewMembership(reg, 2)
	out := newRecordingOutbox(live...)
	return &fixture{
		reg:       reg,
		members:   members,
		admission: NewAdmission(reg, members),
		relay:     NewRelay(reg, members, out),
		out:       out,
	}
}
