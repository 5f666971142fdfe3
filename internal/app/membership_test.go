package app

import (
	"reflect"
	"testing"

	"github.com/tanishqmanglor/nexmeet/internal/core"
)

func TestMembershipOrderAndExclusion(t *testing.T) {
	reg := NewRegistry()
	m := NewMembership(reg, 2)

	// register in reverse to make sure order follows the join, not the map
	reg.Register("b", "bob@x.com")
	reg.Register("a", "alice@x.com")
	m.Add("a", "r1")
	m.Add("b", "r1")

	got := m.MembersOf("r1", "")
	want := []core.Member{{SID: "a", Identity: "alice@x.com"}, {SID: "b", Identity: "bob@x.com"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("MembersOf = %+v, want %+v", got, want)
	}

	got = m.MembersOf("r1", "a")
	if len(got) != 1 || got[0].SID != "b" {
		t.Errorf("MembersOf excluding a = %+v", got)
	}
	if m.Count("r1") != 2 {
		t.Errorf("Count = %d", m.Count("r1"))
	}
	if m.Count("r2") != 0 {
		t.Errorf("Count of empty room = %d", m.Count("r2"))
	}
}

func TestMembershipRemove(t *testing.T) {
	reg := NewRegistry()
	m := NewMembership(reg, 2)
	reg.Register("a", "alice@x.com")
	m.Add("a", "r1")

	ev := m.Remove("a")
	if !ev.Found || ev.Room != "r1" {
		t.Fatalf("Remove = %+v", ev)
	}
	if m.Count("r1") != 0 {
		t.Errorf("room should be empty, got %d", m.Count("r1"))
	}
}

func TestMembershipRooms(t *testing.T) {
	reg := NewRegistry()
	m := NewMembership(reg, 2)
	reg.Register("a", "alice@x.com")
	reg.Register("b", "bob@x.com")
	reg.Register("c", "carol@x.com")
	reg.Register("d", "dave@x.com") // registered, no room
	m.Add("a", "zeta")
	m.Add("b", "zeta")
	m.Add("c", "alpha")

	got := m.Rooms()
	want := []core.RoomInfo{
		{ID: "alpha", Members: 1, Capacity: 2},
		{ID: "zeta", Members: 2, Capacity: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rooms = %+v, want %+v", got, want)
	}
}
