package game

import (
	"encoding/json"
	"math/rand"
	"strconv"
	"sync"
	"time"
)

// BoardCells is the fixed number of cells on every board.
const BoardCells = 36

// Board holds the owner index of every cell in row-major order.
type Board []int

// Clone returns a copy safe to hand to other goroutines.
func (b Board) Clone() Board {
	out := make(Board, len(b))
	copy(out, b)
	return out
}

// Source is the randomness used to shuffle a board.
type Source interface {
	Intn(n int) int
}

type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Intn(n)
}

// NewSource returns a goroutine-safe Source seeded from the clock.
func NewSource() Source {
	return &lockedSource{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

type WinType string

const (
	WinNormal  WinType = "normal"
	WinAllKill WinType = "allkill"
)

// Winner is a 1-based player number. Tie marks a round without a winner.
type Winner int

const Tie Winner = 0

// MarshalJSON encodes a tie as the string "tie" and a winner as its number.
func (w Winner) MarshalJSON() ([]byte, error) {
	if w == Tie {
		return json.Marshal("tie")
	}
	return json.Marshal(int(w))
}

func (w Winner) String() string {
	if w == Tie {
		return "tie"
	}
	return strconv.Itoa(int(w))
}

type Score struct {
	PlayerNumber int `json:"playerNumber"`
	Score        int `json:"score"`
	Clicks       int `json:"clicks"`
}

// Outcome is the resolved result of a finished round.
type Outcome struct {
	Winner  Winner  `json:"winner"`
	Scores  []Score `json:"scores"`
	WinType WinType `json:"winType"`
}
