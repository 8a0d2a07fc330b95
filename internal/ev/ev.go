// Package ev attributes all-in expected value. Each confrontation's pot
// is split into side-pot layers; a contender's expected take is their
// exact equity in each layer they are eligible for, and their EV is that
// take minus what they put in.
package ev

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/railbird/railbird/internal/allin"
	"github.com/railbird/railbird/internal/equity"
	"github.com/railbird/railbird/internal/handlog"
	"github.com/railbird/railbird/poker"
)

// PlayerResult is one contender's outcome in one all-in confrontation.
type PlayerResult struct {
	Player   string
	Hole     allin.HoleCards
	Invested int

	// Expected is the equity-weighted share of all layers the player is
	// eligible for. EV subtracts the player's own contribution; Actual is
	// the recorded chip result; Luck is Actual minus EV.
	Expected float64
	EV       float64
	Actual   int
	Luck     float64
}

// Record is a fully evaluated all-in confrontation.
type Record struct {
	HandNumber int
	HandID     string
	Street     handlog.Street
	Board      []poker.Card
	Pot        int
	Deals      int64
	Results    []PlayerResult
}

// HeadsUp reports whether the confrontation was two-handed.
func (r *Record) HeadsUp() bool { return len(r.Results) == 2 }

// Result returns the entry for a player, or nil.
func (r *Record) Result(player string) *PlayerResult {
	for i := range r.Results {
		if r.Results[i].Player == player {
			return &r.Results[i]
		}
	}
	return nil
}

// Evaluator turns parsed hands into EV records.
type Evaluator struct {
	calc *equity.Calculator
}

// NewEvaluator builds an evaluator on top of an equity calculator.
func NewEvaluator(calc *equity.Calculator) *Evaluator {
	return &Evaluator{calc: calc}
}

// Evaluate extracts the all-in event from a hand and attributes EV per
// side-pot layer. Errors pass through from extraction (ErrNoAllIn,
// ErrInsufficientData) and enumeration (ErrEnumerationLimit).
func (e *Evaluator) Evaluate(hand *handlog.Hand) (*Record, error) {
	event, err := allin.FromHand(hand)
	if err != nil {
		return nil, err
	}

	record := &Record{
		HandNumber: event.HandNumber,
		HandID:     event.HandID,
		Street:     event.Street,
		Board:      event.Board,
		Pot:        event.TotalPot,
		Results:    make([]PlayerResult, len(event.Contenders)),
	}
	expected := make(map[string]float64, len(event.Contenders))

	// Layers with the same eligible set share one equity computation.
	cache := make(map[string]equity.Result)
	for _, pot := range event.Pots {
		if len(pot.Eligible) == 1 {
			expected[pot.Eligible[0]] += float64(pot.Amount)
			continue
		}

		key := strings.Join(pot.Eligible, "\x00")
		result, ok := cache[key]
		if !ok {
			holes := make([]allin.HoleCards, len(pot.Eligible))
			for i, player := range pot.Eligible {
				contender := event.Contender(player)
				if contender == nil {
					return nil, fmt.Errorf("ev: hand #%d: eligible player %q is not a contender",
						event.HandNumber, player)
				}
				holes[i] = contender.Hole
			}
			result, err = e.calc.EquitiesWithDead(holes, event.Board, deadCards(event, pot.Eligible))
			if err != nil {
				return nil, err
			}
			cache[key] = result
		}
		if result.Deals > record.Deals {
			record.Deals = result.Deals
		}
		for i, player := range pot.Eligible {
			expected[player] += result.Equities[i] * float64(pot.Amount)
		}
	}

	for i, contender := range event.Contenders {
		actual := hand.Net(contender.Player)
		exp := expected[contender.Player]
		ev := exp - float64(contender.Contribution)
		record.Results[i] = PlayerResult{
			Player:   contender.Player,
			Hole:     contender.Hole,
			Invested: contender.Contribution,
			Expected: exp,
			EV:       ev,
			Actual:   actual,
			Luck:     float64(actual) - ev,
		}
	}
	return record, nil
}

// deadCards collects the revealed hole cards of contenders outside a
// layer's eligible set. A short stack's shown hand cannot win the side
// pot, but its cards are still out of the deck.
func deadCards(event *allin.Event, eligible []string) []poker.Card {
	var dead []poker.Card
	for _, contender := range event.Contenders {
		if !contender.Hole.IsKnown() || lo.Contains(eligible, contender.Player) {
			continue
		}
		a, b := contender.Hole.Cards()
		dead = append(dead, a, b)
	}
	return dead
}

// PlayerTotals is a player's accumulated all-in results across hands.
type PlayerTotals struct {
	Player   string
	Hands    int
	Expected float64
	EV       float64
	Actual   int
	Luck     float64
}

// Accumulator folds records into per-player totals. Insertion order does
// not affect the result: totals are sums keyed by canonical player name.
// Not safe for concurrent use; the batch runner feeds it from one
// goroutine.
type Accumulator struct {
	// Canonicalize maps raw player strings to a stable identity. Nil
	// leaves names as-is.
	Canonicalize func(string) string

	players map[string]*PlayerTotals
}

// NewAccumulator builds an accumulator with an optional identity mapper.
func NewAccumulator(canonicalize func(string) string) *Accumulator {
	return &Accumulator{
		Canonicalize: canonicalize,
		players:      make(map[string]*PlayerTotals),
	}
}

// Add folds one record into the totals.
func (a *Accumulator) Add(record *Record) {
	for _, result := range record.Results {
		name := result.Player
		if a.Canonicalize != nil {
			name = a.Canonicalize(name)
		}
		totals, ok := a.players[name]
		if !ok {
			totals = &PlayerTotals{Player: name}
			a.players[name] = totals
		}
		totals.Hands++
		totals.Expected += result.Expected
		totals.EV += result.EV
		totals.Actual += result.Actual
		totals.Luck += result.Luck
	}
}

// Totals returns per-player sums sorted by player name.
func (a *Accumulator) Totals() []PlayerTotals {
	out := make([]PlayerTotals, 0, len(a.players))
	for _, totals := range a.players {
		out = append(out, *totals)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Player < out[j].Player })
	return out
}

// Player returns one player's totals and whether any were recorded.
func (a *Accumulator) Player(name string) (PlayerTotals, bool) {
	if a.Canonicalize != nil {
		name = a.Canonicalize(name)
	}
	totals, ok := a.players[name]
	if !ok {
		return PlayerTotals{}, false
	}
	return *totals, true
}
