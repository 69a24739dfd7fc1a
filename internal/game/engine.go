package game

import "fmt"

// ValidCapacity reports whether BoardCells splits evenly across capacity owners.
func ValidCapacity(capacity int) bool {
	return capacity >= 2 && capacity <= BoardCells && BoardCells%capacity == 0
}

// NewBoard deals BoardCells/capacity cells to every owner index and shuffles
// them with Fisher-Yates.
func NewBoard(capacity int, src Source) (Board, error) {
	if !ValidCapacity(capacity) {
		return nil, fmt.Errorf("%d cells cannot be split evenly across %d players", BoardCells, capacity)
	}

	per := BoardCells / capacity
	b := make(Board, 0, BoardCells)
	for owner := 0; owner < capacity; owner++ {
		for i := 0; i < per; i++ {
			b = append(b, owner)
		}
	}

	for i := len(b) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		b[i], b[j] = b[j], b[i]
	}
	return b, nil
}

// Flip advances the owner of cell idx to the next color. It returns false
// without touching the board when idx is out of range.
func Flip(b Board, idx, capacity int) bool {
	if idx < 0 || idx >= len(b) || capacity <= 0 {
		return false
	}
	b[idx] = (b[idx] + 1) % capacity
	return true
}
