package game

import (
	"encoding/json"
	"math/rand"
	"testing"
)

func TestNewBoardSplitsEvenly(t *testing.T) {
	src := rand.New(rand.NewSource(7))
	for _, capacity := range []int{2, 3, 4, 6, 9, 12, 18, 36} {
		b, err := NewBoard(capacity, src)
		if err != nil {
			t.Fatalf("capacity %d: %v", capacity, err)
		}
		if len(b) != BoardCells {
			t.Fatalf("capacity %d: expected %d cells, got %d", capacity, BoardCells, len(b))
		}
		for owner, n := range ColorCounts(b, capacity) {
			if n != BoardCells/capacity {
				t.Fatalf("capacity %d: owner %d has %d cells, want %d", capacity, owner, n, BoardCells/capacity)
			}
		}
	}
}

func TestNewBoardRejectsUnevenCapacity(t *testing.T) {
	for _, capacity := range []int{-1, 0, 1, 5, 7, 8, 10, 37} {
		if _, err := NewBoard(capacity, NewSource()); err == nil {
			t.Fatalf("capacity %d: expected error", capacity)
		}
	}
}

func TestNewBoardShuffles(t *testing.T) {
	src := rand.New(rand.NewSource(42))
	first, _ := NewBoard(2, src)
	for i := 0; i < 10; i++ {
		next, _ := NewBoard(2, src)
		for j := range next {
			if next[j] != first[j] {
				return
			}
		}
	}
	t.Fatal("expected successive boards to differ")
}

func TestFlipCyclesOwner(t *testing.T) {
	b := Board{0, 1, 2}
	if !Flip(b, 2, 3) {
		t.Fatal("expected flip to apply")
	}
	if b[2] != 0 {
		t.Fatalf("expected owner to wrap to 0, got %d", b[2])
	}
	Flip(b, 0, 3)
	if b[0] != 1 {
		t.Fatalf("expected owner 1, got %d", b[0])
	}
}

func TestFlipOutOfRange(t *testing.T) {
	b := Board{0, 1}
	if Flip(b, -1, 2) || Flip(b, 2, 2) {
		t.Fatal("expected out of range flip to be rejected")
	}
	if b[0] != 0 || b[1] != 1 {
		t.Fatalf("board mutated: %v", b)
	}
}

func TestIsAllKill(t *testing.T) {
	b := make(Board, BoardCells)
	if !IsAllKill(b, 2) {
		t.Fatal("expected all-zero board to be all-kill")
	}
	b[5] = 1
	if IsAllKill(b, 2) {
		t.Fatal("expected mixed board not to be all-kill")
	}
}

func TestResolveTieBrokenByFewestClicks(t *testing.T) {
	out := Resolve(Board{0, 0, 1, 1}, []string{"A", "B"}, map[string]int{"A": 1, "B": 5}, WinNormal)
	if out.Winner != 1 {
		t.Fatalf("expected player 1, got %d", out.Winner)
	}
	if out.Scores[0].Score != 2 || out.Scores[1].Score != 2 {
		t.Fatalf("unexpected scores: %+v", out.Scores)
	}
	if out.Scores[1].Clicks != 5 {
		t.Fatalf("expected player 2 clicks 5, got %d", out.Scores[1].Clicks)
	}
}

func TestResolveFullTie(t *testing.T) {
	out := Resolve(Board{0, 1, 1, 0}, []string{"A", "B"}, map[string]int{"A": 3, "B": 3}, WinNormal)
	if out.Winner != Tie {
		t.Fatalf("expected tie, got %d", out.Winner)
	}
}

func TestResolveTieOnlyAmongLeaders(t *testing.T) {
	// Players 1 and 2 lead with 2 cells each; player 3 has the fewest clicks but trails.
	b := Board{0, 0, 1, 1, 2}
	out := Resolve(b, []string{"A", "B", "C"}, map[string]int{"A": 4, "B": 2, "C": 0}, WinNormal)
	if out.Winner != 2 {
		t.Fatalf("expected player 2, got %d", out.Winner)
	}
}

func TestResolveAllKill(t *testing.T) {
	b := make(Board, BoardCells)
	out := Resolve(b, []string{"A", "B"}, map[string]int{"A": 99, "B": 0}, WinAllKill)
	if out.Winner != 1 {
		t.Fatalf("expected player 1, got %d", out.Winner)
	}
	if out.WinType != WinAllKill {
		t.Fatalf("expected allkill, got %s", out.WinType)
	}
	if out.Scores[0].Score != BoardCells {
		t.Fatalf("expected %d cells, got %d", BoardCells, out.Scores[0].Score)
	}
}

func TestOutcomeJSON(t *testing.T) {
	raw, err := json.Marshal(Outcome{Winner: Tie, WinType: WinNormal})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded struct {
		Winner any `json:"winner"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Winner != "tie" {
		t.Fatalf("expected tie marker, got %v", decoded.Winner)
	}

	raw, _ = json.Marshal(Outcome{Winner: 2})
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if n, ok := decoded.Winner.(float64); !ok || n != 2 {
		t.Fatalf("expected winner 2, got %v", decoded.Winner)
	}
}

func TestWinnerString(t *testing.T) {
	if got := Tie.String(); got != "tie" {
		t.Fatalf("expected tie, got %q", got)
	}
	if got := Winner(3).String(); got != "3" {
		t.Fatalf("expected 3, got %q", got)
	}
}
