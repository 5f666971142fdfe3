// Package domain holds the participant and room identifiers and the rules
// that validate them.
package domain

import "errors"

const (
	MaxIdentityLen = 254
	MaxRoomIDLen   = 128
)

var (
	ErrIdentityEmpty   = errors.New("identity empty")
	ErrIdentityTooLong = errors.New("identity too long")
)

// Identity is the participant handle supplied by the client (an e-mail in
// practice). It is never verified.
type Identity string

func ParseIdentity(raw string) (Identity, error) {
	if len(raw) == 0 {
		return "", ErrIdentityEmpty
	}
	if len(raw) > MaxIdentityLen {
		return "", ErrIdentityTooLong
	}
	return Identity(raw), nil
}
