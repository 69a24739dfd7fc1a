package ws

import (
	"encoding/json"
	"errors"
	"log"
	"strings"

	"flipboard/internal/room"
	"flipboard/internal/shared"
)

const (
	codeInvalidArgument = "INVALID_ARGUMENT"
	codeInternal        = "INTERNAL"
)

type inboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type createRoomPayload struct {
	Capacity   int `json:"capacity"`
	MaxPlayers int `json:"maxPlayers"`
}

type roomPayload struct {
	RoomCode string `json:"roomCode"`
}

type flipPayload struct {
	RoomCode string `json:"roomCode"`
	Index    *int   `json:"index"`
}

// dispatch translates one inbound event into a state machine call. Replies
// and broadcasts are emitted by the manager; only rejections are written here.
func (h *Hub) dispatch(connID string, frame inboundFrame) {
	switch frame.Event {
	case shared.EventCreateRoom:
		var p createRoomPayload
		if len(frame.Data) > 0 {
			if err := json.Unmarshal(frame.Data, &p); err != nil {
				h.emitError(connID, codeInvalidArgument, "invalid createRoom payload")
				return
			}
		}
		capacity := p.Capacity
		if capacity == 0 {
			capacity = p.MaxPlayers
		}
		if _, err := h.roomManager.CreateRoom(connID, capacity); err != nil {
			h.reject(connID, err)
		}

	case shared.EventJoinRoom:
		code, ok := decodeRoomCode(frame.Data)
		if !ok {
			h.emitError(connID, codeInvalidArgument, "roomCode is required")
			return
		}
		if err := h.roomManager.Join(code, connID); err != nil {
			h.reject(connID, err)
		}

	case shared.EventStartGame:
		code, ok := decodeRoomCode(frame.Data)
		if !ok {
			h.emitError(connID, codeInvalidArgument, "roomCode is required")
			return
		}
		if err := h.roomManager.Start(code, connID); err != nil {
			h.reject(connID, err)
		}

	case shared.EventFlipCell:
		// Late or malformed flips are routine during a race to the buzzer.
		var p flipPayload
		if err := json.Unmarshal(frame.Data, &p); err != nil || p.Index == nil {
			return
		}
		h.roomManager.Flip(normalizeCode(p.RoomCode), connID, *p.Index)

	case shared.EventRematch:
		code, ok := decodeRoomCode(frame.Data)
		if !ok {
			h.emitError(connID, codeInvalidArgument, "roomCode is required")
			return
		}
		if err := h.roomManager.Rematch(code); err != nil {
			h.reject(connID, err)
		}

	default:
		log.Printf("ws: %s sent unknown event %q", connID, frame.Event)
		h.emitError(connID, codeInvalidArgument, "unsupported event")
	}
}

// decodeRoomCode accepts either {"roomCode": "..."} or a bare JSON string.
func decodeRoomCode(raw json.RawMessage) (string, bool) {
	var p roomPayload
	if err := json.Unmarshal(raw, &p); err == nil && p.RoomCode != "" {
		return normalizeCode(p.RoomCode), true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && strings.TrimSpace(s) != "" {
		return normalizeCode(s), true
	}
	return "", false
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (h *Hub) reject(connID string, err error) {
	var re *room.Error
	if errors.As(err, &re) {
		h.emitError(connID, string(re.Code), re.Message)
		return
	}
	log.Printf("ws: %s request failed: %v", connID, err)
	h.emitError(connID, codeInternal, "internal error")
}

func (h *Hub) emitError(connID, code, message string) {
	h.Emit(connID, shared.EventError, shared.ErrorMessage{Code: code, Message: message})
}
