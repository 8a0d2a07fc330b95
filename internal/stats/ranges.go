package stats

import "github.com/railbird/railbird/poker"

// RangeMatrix is the standard 13x13 starting-hand grid: aces in the top
// left corner, pairs on the diagonal, suited combos above it, offsuit
// below.
type RangeMatrix struct {
	counts [13][13]int
	total  int
}

// gridIndex maps a rank to its grid position: ace 0 down to deuce 12.
func gridIndex(rank uint8) int { return int(poker.Ace - rank) }

// Add records one two-card combo.
func (m *RangeMatrix) Add(a, b poker.Card) {
	hi, lo := a, b
	if b.Rank() > a.Rank() {
		hi, lo = b, a
	}
	row, col := gridIndex(hi.Rank()), gridIndex(lo.Rank())
	if hi.Rank() != lo.Rank() && hi.Suit() != lo.Suit() {
		// Offsuit goes below the diagonal.
		row, col = col, row
	}
	m.counts[row][col]++
	m.total++
}

// Count returns the tally for one cell.
func (m *RangeMatrix) Count(row, col int) int { return m.counts[row][col] }

// Total returns the number of combos recorded.
func (m *RangeMatrix) Total() int { return m.total }

// Frequency returns a cell's share of all recorded combos.
func (m *RangeMatrix) Frequency(row, col int) float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.counts[row][col]) / float64(m.total)
}

// Label names a cell in range notation: "AA", "AKs", "AKo".
func Label(row, col int) string {
	ranks := "AKQJT98765432"
	if row == col {
		return string(ranks[row]) + string(ranks[col])
	}
	if row < col {
		return string(ranks[row]) + string(ranks[col]) + "s"
	}
	return string(ranks[col]) + string(ranks[row]) + "o"
}
