package app

import (
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/tanishqmanglor/nexmeet/internal/core"
	"github.com/tanishqmanglor/nexmeet/internal/domain"
)

type JoinOutcome int

const (
	JoinAdmitted JoinOutcome = iota
	JoinRejected
)

func (o JoinOutcome) String() string {
	switch o {
	case JoinAdmitted:
		return "admitted"
	case JoinRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

type JoinResult struct {
	Outcome JoinOutcome
	// Existing holds the occupants already present, joiner excluded.
	Existing []core.Member
	// Replaced is the stale session evicted for the same identity, if any.
	Replaced Eviction
}

// Admission gates room joins against capacity.
type Admission struct {
	mu      sync.Mutex
	reg     *Registry
	members *Membership
}

func NewAdmission(reg *Registry, members *Membership) *Admission {
	return &Admission{reg: reg, members: members}
}

// TryJoin counts the room before registering, so a stale session for the
// same identity still occupies its slot during the check.
func (a *Admission) TryJoin(sid core.SessionID, identity domain.Identity, room domain.RoomID) JoinResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	if count := a.members.Count(room); count >= a.members.Capacity() {
		log.Info().Str("module", "app.admission").Str("sid", string(sid)).Str("identity", string(identity)).
			Str("room", string(room)).Int("count", count).Msg("room full")
		return JoinResult{Outcome: JoinRejected}
	}

	replaced := a.reg.Register(sid, identity)
	a.members.Add(sid, room)
	existing := a.members.MembersOf(room, sid)
	log.Info().Str("module", "app.admission").Str("sid", string(sid)).Str("identity", string(identity)).
		Str("room", string(room)).Int("count", len(existing)+1).Int("capacity", a.members.Capacity()).Msg("joined")
	return JoinResult{Outcome: JoinAdmitted, Existing: existing, Replaced: replaced}
}
