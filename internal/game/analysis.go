package game

// Resolve computes the round outcome. players is ordered by player number and
// the index of each player is its owner index on the board.
//
// The highest cell count wins. Leaders tied on cells are separated by the
// fewest clicks; leaders tied on both produce Tie.
func Resolve(b Board, players []string, clicks map[string]int, winType WinType) Outcome {
	counts := ColorCounts(b, len(players))

	scores := make([]Score, len(players))
	maxScore := -1
	for i, id := range players {
		scores[i] = Score{
			PlayerNumber: i + 1,
			Score:        counts[i],
			Clicks:       clicks[id],
		}
		if counts[i] > maxScore {
			maxScore = counts[i]
		}
	}

	var leaders []Score
	for _, s := range scores {
		if s.Score == maxScore {
			leaders = append(leaders, s)
		}
	}

	out := Outcome{Winner: Tie, Scores: scores, WinType: winType}
	switch len(leaders) {
	case 0:
		return out
	case 1:
		out.Winner = Winner(leaders[0].PlayerNumber)
		return out
	}

	best := leaders[0]
	shared := false
	for _, s := range leaders[1:] {
		switch {
		case s.Clicks < best.Clicks:
			best = s
			shared = false
		case s.Clicks == best.Clicks:
			shared = true
		}
	}
	if !shared {
		out.Winner = Winner(best.PlayerNumber)
	}
	return out
}
