package room

import "fmt"

// Code is a machine-readable error code reported to clients.
type Code string

const (
	CodeRoomNotFound      Code = "ROOM_NOT_FOUND"
	CodeRoomFull          Code = "ROOM_FULL"
	CodeNotEnoughPlayers  Code = "NOT_ENOUGH_PLAYERS"
	CodeAlreadyStarted    Code = "ALREADY_STARTED"
	CodeInvalidCapacity   Code = "INVALID_CAPACITY"
	CodeAlreadyJoined     Code = "ALREADY_JOINED"
	CodeRoomCodeExhausted Code = "ROOM_CODE_EXHAUSTED"
)

// Error is a rejected room operation. It is never fatal to the process.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error with the same code, so callers can compare against
// the sentinel values below regardless of message.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

var (
	ErrRoomNotFound      = &Error{Code: CodeRoomNotFound, Message: "room does not exist"}
	ErrRoomFull          = &Error{Code: CodeRoomFull, Message: "room is full"}
	ErrNotEnoughPlayers  = &Error{Code: CodeNotEnoughPlayers, Message: "all players must join before starting"}
	ErrAlreadyStarted    = &Error{Code: CodeAlreadyStarted, Message: "game has already started"}
	ErrInvalidCapacity   = &Error{Code: CodeInvalidCapacity, Message: "invalid room capacity"}
	ErrAlreadyJoined     = &Error{Code: CodeAlreadyJoined, Message: "already joined this room"}
	ErrRoomCodeExhausted = &Error{Code: CodeRoomCodeExhausted, Message: "could not allocate a room code"}
)

func notEnoughPlayers(capacity int) *Error {
	return &Error{Code: CodeNotEnoughPlayers, Message: fmt.Sprintf("all %d players must join before starting", capacity)}
}

func invalidCapacity(capacity int) *Error {
	return &Error{Code: CodeInvalidCapacity, Message: fmt.Sprintf("36 cells cannot be split evenly across %d players", capacity)}
}
