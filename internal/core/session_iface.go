package core

import "github.com/tanishqmanglor/nexmeet/internal/domain"

// SessionID identifies one live transport connection. A reconnect always
// gets a fresh one.
type SessionID string

// Member is a room occupant as seen by the relay.
type Member struct {
	SID      SessionID
	Identity domain.Identity
}
