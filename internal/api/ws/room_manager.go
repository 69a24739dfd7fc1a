package ws

import "flipboard/internal/room"

// RoomManager is the state machine the gateway drives.
type RoomManager interface {
	CreateRoom(connID string, capacity int) (*room.Room, error)
	Join(code, connID string) error
	Start(code, connID string) error
	Flip(code, connID string, idx int) bool
	Rematch(code string) error
	Leave(code, connID string)
}
