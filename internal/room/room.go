package room

import (
	"sync"
	"time"

	"flipboard/internal/game"
)

type Phase string

const (
	PhaseForming    Phase = "forming"
	PhaseReady      Phase = "ready"
	PhaseInProgress Phase = "in_progress"
	PhaseEnded      Phase = "ended"
)

// Room is the shared state of one contest. Every field below mu is guarded
// by it; the manager is the only writer.
type Room struct {
	Code     string
	Capacity int

	mu        sync.Mutex
	board     game.Board
	players   []string
	clicks    map[string]int
	phase     Phase
	round     uint64
	timer     *roundTimer
	closed    bool
	createdAt time.Time
	updatedAt time.Time
}

// Store is the room registry.
type Store interface {
	// Add inserts r unless a room with the same code is already live.
	Add(r *Room) bool
	GetRoom(code string) (*Room, bool)
	DeleteRoom(code string)
	Rooms() []*Room
	Len() int
}

func newRoom(code string, capacity int, board game.Board, creator string, now time.Time) *Room {
	return &Room{
		Code:      code,
		Capacity:  capacity,
		board:     board,
		players:   []string{creator},
		clicks:    map[string]int{creator: 0},
		phase:     PhaseForming,
		createdAt: now,
		updatedAt: now,
	}
}

func (r *Room) playerIndex(connID string) int {
	for i, id := range r.players {
		if id == connID {
			return i
		}
	}
	return -1
}

func (r *Room) full() bool {
	return len(r.players) >= r.Capacity
}

// clickTally lists click counts ordered by player number.
func (r *Room) clickTally() []int {
	out := make([]int, len(r.players))
	for i, id := range r.players {
		out[i] = r.clicks[id]
	}
	return out
}

// View is a point-in-time copy of a room.
type View struct {
	Code       string     `json:"code"`
	Capacity   int        `json:"capacity"`
	Players    int        `json:"players"`
	Phase      Phase      `json:"phase"`
	Round      uint64     `json:"round"`
	Board      game.Board `json:"board"`
	Clicks     []int      `json:"clicks"`
	TimerArmed bool       `json:"timerArmed"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// Snapshot copies the room under its lock.
func (r *Room) Snapshot() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return View{
		Code:       r.Code,
		Capacity:   r.Capacity,
		Players:    len(r.players),
		Phase:      r.phase,
		Round:      r.round,
		Board:      r.board.Clone(),
		Clicks:     r.clickTally(),
		TimerArmed: r.timer != nil,
		CreatedAt:  r.createdAt,
		UpdatedAt:  r.updatedAt,
	}
}
