package handlog

import (
	"time"

	"github.com/railbird/railbird/poker"
)

// Street identifies a betting street.
type Street int

const (
	StreetNone Street = iota
	Preflop
	Flop
	Turn
	River
)

func (s Street) String() string {
	switch s {
	case Preflop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	default:
		return "none"
	}
}

// ActionType identifies a player action parsed from the log.
type ActionType string

const (
	ActionSmallBlind ActionType = "small_blind"
	ActionBigBlind   ActionType = "big_blind"
	ActionCall       ActionType = "call"
	ActionBet        ActionType = "bet"
	ActionRaise      ActionType = "raise"
	ActionCheck      ActionType = "check"
	ActionFold       ActionType = "fold"
)

// Entry is one raw log row as exported by the game client:
// a timestamp, a sequence number, and the entry text.
type Entry struct {
	At    time.Time
	Order int64
	Text  string
}

// Action is a single player action within a hand.
type Action struct {
	Player string
	Type   ActionType
	Street Street
	Amount int
}

// PlayerState tracks one player's money and reveal state through a hand.
type PlayerState struct {
	InitialStack int
	Invested     int
	Folded       bool
	AllIn        bool
	HoleCards    []poker.Card // nil when never shown
}

// Hand is one fully assembled hand: players, actions, board, reveals, and
// the recorded pot distribution. Hands are write-once; nothing mutates a
// Hand after the parser emits it.
type Hand struct {
	Number    int
	ID        string
	Dealer    string
	StartTime time.Time
	EndTime   time.Time

	// Seats lists players in the order of the stacks line; Players holds
	// their per-hand state keyed by the raw "Username @ ID" string.
	Seats   []string
	Players map[string]*PlayerState

	SmallBlindPlayer string
	BigBlindPlayer   string

	Actions []Action
	Board   []poker.Card

	// All-in bookkeeping: the street on which the first player became
	// all-in (before the river) and the board as revealed at that moment.
	AllInStreet  Street
	BoardAtAllIn []poker.Card

	// Pot distribution as recorded in the log. Multiple collect entries
	// (split pots, side pots) accumulate per player.
	Pot         int
	Payouts     map[string]int
	WinningHand string
}

// Net returns a player's recorded net result for the hand.
func (h *Hand) Net(player string) int {
	ps, ok := h.Players[player]
	if !ok {
		return 0
	}
	return h.Payouts[player] - ps.Invested
}
