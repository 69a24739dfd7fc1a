package game

// ColorCounts tallies cells per owner index. Values outside [0, capacity)
// are not counted.
func ColorCounts(b Board, capacity int) []int {
	counts := make([]int, capacity)
	for _, owner := range b {
		if owner >= 0 && owner < capacity {
			counts[owner]++
		}
	}
	return counts
}

// IsAllKill reports whether a single owner holds every cell.
func IsAllKill(b Board, capacity int) bool {
	for _, c := range ColorCounts(b, capacity) {
		if c == BoardCells {
			return true
		}
	}
	return false
}
