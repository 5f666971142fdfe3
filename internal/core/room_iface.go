package core

import "github.com/tanishqmanglor/nexmeet/internal/domain"

// RoomInfo is a read-only view for APIs (no identities, no transport fields).
type RoomInfo struct {
	ID       domain.RoomID `json:"id"`
	Members  int           `json:"members"`
	Capacity int           `json:"capacity"`
}
