package app

import (
	"sort"

	"github.com/tanishqmanglor/nexmeet/internal/core"
	"github.com/tanishqmanglor/nexmeet/internal/domain"
)

// Membership is a read view over the registry's room assignments.
// Capacity is enforced by Admission, not here.
type Membership struct {
	reg      *Registry
	capacity int
}

func NewMembership(reg *Registry, capacity int) *Membership {
	return &Membership{reg: reg, capacity: capacity}
}

// MembersOf lists occupants of room in join order, skipping excluding.
func (m *Membership) MembersOf(room domain.RoomID, excluding core.SessionID) []core.Member {
	out := make([]core.Member, 0, m.capacity)
	for _, snap := range m.reg.snapshot() {
		if snap.Room != room || snap.SID == excluding {
			continue
		}
		out = append(out, core.Member{SID: snap.SID, Identity: snap.Identity})
	}
	return out
}

func (m *Membership) Count(room domain.RoomID) int {
	return len(m.MembersOf(room, ""))
}

func (m *Membership) Add(sid core.SessionID, room domain.RoomID) bool {
	return m.reg.SetRoom(sid, room)
}

func (m *Membership) Remove(sid core.SessionID) Eviction {
	return m.reg.Evict(sid)
}

func (m *Membership) Capacity() int { return m.capacity }

// Rooms lists every occupied room, sorted by id.
func (m *Membership) Rooms() []core.RoomInfo {
	counts := make(map[domain.RoomID]int)
	for _, snap := range m.reg.snapshot() {
		counts[snap.Room]++
	}
	out := make([]core.RoomInfo, 0, len(counts))
	for id, n := range counts {
		out = append(out, core.RoomInfo{ID: id, Members: n, Capacity: m.capacity})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
