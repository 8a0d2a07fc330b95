package stats

import "github.com/railbird/railbird/internal/handlog"

// Positions returns seat position names in order starting from the
// dealer. Heads up the dealer posts the small blind.
func Positions(players int) []string {
	switch players {
	case 2:
		return []string{"BTN/SB", "BB"}
	case 3:
		return []string{"BTN", "SB", "BB"}
	case 4:
		return []string{"BTN", "SB", "BB", "UTG"}
	case 5:
		return []string{"BTN", "SB", "BB", "UTG", "CO"}
	case 6:
		return []string{"BTN", "SB", "BB", "UTG", "HJ", "CO"}
	case 7:
		return []string{"BTN", "SB", "BB", "UTG", "MP", "HJ", "CO"}
	case 8:
		return []string{"BTN", "SB", "BB", "UTG", "UTG+1", "MP", "HJ", "CO"}
	case 9:
		return []string{"BTN", "SB", "BB", "UTG", "UTG+1", "MP", "MP+1", "HJ", "CO"}
	case 10:
		return []string{"BTN", "SB", "BB", "UTG", "UTG+1", "UTG+2", "MP", "MP+1", "HJ", "CO"}
	default:
		return nil
	}
}

// PositionOf names a player's position in a hand, or "" when the player
// was not seated or the table size is unsupported.
func PositionOf(hand *handlog.Hand, player string) string {
	positions := Positions(len(hand.Seats))
	if positions == nil {
		return ""
	}

	dealer := -1
	seat := -1
	for i, name := range hand.Seats {
		if name == hand.Dealer {
			dealer = i
		}
		if name == player {
			seat = i
		}
	}
	if dealer < 0 || seat < 0 {
		return ""
	}
	return positions[(seat-dealer+len(hand.Seats))%len(hand.Seats)]
}
