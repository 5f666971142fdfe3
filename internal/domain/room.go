package domain

import "errors"

var (
	ErrRoomEmpty   = errors.New("room id empty")
	ErrRoomTooLong = errors.New("room id too long")
)

// RoomID names a room. Rooms are never created explicitly; one exists while
// at least one session references it.
type RoomID string

func ParseRoomID(raw string) (RoomID, error) {
	if len(raw) == 0 {
		return "", ErrRoomEmpty
	}
	if len(raw) > MaxRoomIDLen {
		return "", ErrRoomTooLong
	}
	return RoomID(raw), nil
}
