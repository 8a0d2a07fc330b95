// Package equity computes exact multiway all-in equities by enumerating
// every remaining board runout, and every hole-card combination for
// contenders whose hands were never revealed. No sampling: the same
// inputs always produce the same equities.
package equity

import (
	"errors"
	"fmt"

	"github.com/railbird/railbird/internal/allin"
	"github.com/railbird/railbird/poker"
)

// DefaultLimit bounds the number of enumerated deals per confrontation.
// A flop all-in heads up runs ~1k deals; two unknown hands preflop run
// into the millions, which this still admits.
const DefaultLimit = 25_000_000

// ErrEnumerationLimit marks a confrontation whose exact enumeration
// would exceed the configured deal limit.
var ErrEnumerationLimit = errors.New("enumeration limit exceeded")

// Result carries per-contender probabilities, indexed like the input
// holes. Equities include split tie shares and sum to 1; Wins is the
// outright-win probability and Ties the probability of sharing the best
// hand, so Wins[i] ≤ Equities[i] ≤ Wins[i]+Ties[i].
type Result struct {
	Equities []float64
	Wins     []float64
	Ties     []float64
	Deals    int64
}

// Calculator enumerates all-in equities under a deal limit.
type Calculator struct {
	limit int64
}

// NewCalculator builds a calculator. A non-positive limit selects
// DefaultLimit.
func NewCalculator(limit int64) *Calculator {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Calculator{limit: limit}
}

// Limit returns the configured deal limit.
func (c *Calculator) Limit() int64 { return c.limit }

// Equities computes each contender's exact equity for the given partial
// board. Unknown holes are enumerated uniformly over the unseen deck.
// At least two contenders and at most five board cards are required.
func (c *Calculator) Equities(holes []allin.HoleCards, board []poker.Card) (Result, error) {
	return c.EquitiesWithDead(holes, board, nil)
}

// EquitiesWithDead is Equities with extra dead cards removed from the
// unseen deck: cards known to be out of play, such as the revealed hand
// of a player not eligible for the pot under evaluation.
func (c *Calculator) EquitiesWithDead(holes []allin.HoleCards, board, dead []poker.Card) (Result, error) {
	if len(holes) < 2 {
		return Result{}, fmt.Errorf("equity: need at least 2 contenders, got %d", len(holes))
	}
	if len(board) > 5 {
		return Result{}, fmt.Errorf("equity: board has %d cards", len(board))
	}

	var used poker.Hand
	for _, card := range board {
		if used.HasCard(card) {
			return Result{}, fmt.Errorf("equity: duplicate card %s", card)
		}
		used.AddCard(card)
	}

	unknowns := 0
	for _, hole := range holes {
		if !hole.IsKnown() {
			unknowns++
			continue
		}
		a, b := hole.Cards()
		if used.HasCard(a) || used.HasCard(b) {
			return Result{}, fmt.Errorf("equity: duplicate card in %s", hole)
		}
		used.AddCard(a)
		used.AddCard(b)
	}
	for _, card := range dead {
		if used.HasCard(card) {
			return Result{}, fmt.Errorf("equity: duplicate dead card %s", card)
		}
		used.AddCard(card)
	}

	deck := poker.Remaining(used)
	need := 5 - len(board)
	deals := countDeals(len(deck), unknowns, need)
	if deals > c.limit {
		return Result{}, fmt.Errorf("%w: %d deals over limit %d", ErrEnumerationLimit, deals, c.limit)
	}

	e := &enumerator{
		holes:  holes,
		board:  append([]poker.Card(nil), board...),
		scores: make([]float64, len(holes)),
		wins:   make([]float64, len(holes)),
		ties:   make([]float64, len(holes)),
		assign: make([][2]poker.Card, len(holes)),
		ranks:  make([]poker.HandRank, len(holes)),
	}
	e.assignUnknowns(deck, 0)

	if e.deals == 0 {
		return Result{}, fmt.Errorf("equity: no possible deals")
	}
	result := Result{
		Equities: make([]float64, len(holes)),
		Wins:     make([]float64, len(holes)),
		Ties:     make([]float64, len(holes)),
		Deals:    e.deals,
	}
	for i, score := range e.scores {
		result.Equities[i] = score / float64(e.deals)
		result.Wins[i] = e.wins[i] / float64(e.deals)
		result.Ties[i] = e.ties[i] / float64(e.deals)
	}
	return result, nil
}

// countDeals predicts the enumeration size: hole-card pairs for each
// unknown contender drawn in turn, then the remaining board cards.
func countDeals(deckSize, unknowns, boardNeed int) int64 {
	deals := int64(1)
	remaining := deckSize
	for i := 0; i < unknowns; i++ {
		deals *= binomial(remaining, 2)
		remaining -= 2
	}
	return deals * binomial(remaining, boardNeed)
}

func binomial(n, k int) int64 {
	if k < 0 || k > n {
		return 0
	}
	result := int64(1)
	for i := 1; i <= k; i++ {
		result = result * int64(n-k+i) / int64(i)
	}
	return result
}

type enumerator struct {
	holes  []allin.HoleCards
	board  []poker.Card
	scores []float64
	wins   []float64
	ties   []float64
	assign [][2]poker.Card
	ranks  []poker.HandRank
	deals  int64
}

// assignUnknowns deals hole cards to unknown contenders starting at
// index from, then enumerates board completions. Pairs are unordered
// within a contender; contenders are filled left to right so each joint
// assignment is visited exactly once.
func (e *enumerator) assignUnknowns(deck []poker.Card, from int) {
	for from < len(e.holes) && e.holes[from].IsKnown() {
		from++
	}
	if from == len(e.holes) {
		e.runBoards(deck)
		return
	}

	for i := 0; i < len(deck)-1; i++ {
		for j := i + 1; j < len(deck); j++ {
			e.assign[from] = [2]poker.Card{deck[i], deck[j]}
			rest := removeTwo(deck, i, j)
			e.assignUnknowns(rest, from+1)
		}
	}
}

func removeTwo(deck []poker.Card, i, j int) []poker.Card {
	rest := make([]poker.Card, 0, len(deck)-2)
	for k, card := range deck {
		if k != i && k != j {
			rest = append(rest, card)
		}
	}
	return rest
}

// runBoards enumerates completions of the board and scores each deal.
func (e *enumerator) runBoards(deck []poker.Card) {
	need := 5 - len(e.board)
	if need == 0 {
		e.score(e.board)
		return
	}

	idx := make([]int, need)
	for i := range idx {
		idx[i] = i
	}
	full := make([]poker.Card, 5)
	copy(full, e.board)

	for {
		for i, d := range idx {
			full[len(e.board)+i] = deck[d]
		}
		e.score(full)

		// Advance to the next ascending index combination.
		pos := need - 1
		for pos >= 0 && idx[pos] == len(deck)-need+pos {
			pos--
		}
		if pos < 0 {
			return
		}
		idx[pos]++
		for i := pos + 1; i < need; i++ {
			idx[i] = idx[i-1] + 1
		}
	}
}

// score evaluates one fully dealt board and splits the deal's single
// point among the best hands.
func (e *enumerator) score(board []poker.Card) {
	e.deals++

	var boardHand poker.Hand
	for _, card := range board {
		boardHand.AddCard(card)
	}

	best := poker.HandRank(^uint16(0))
	winners := 0
	for i, hole := range e.holes {
		var a, b poker.Card
		if hole.IsKnown() {
			a, b = hole.Cards()
		} else {
			a, b = e.assign[i][0], e.assign[i][1]
		}
		hand := boardHand
		hand.AddCard(a)
		hand.AddCard(b)
		rank := poker.Evaluate7(hand)
		e.ranks[i] = rank
		if rank < best {
			best = rank
			winners = 1
		} else if rank == best {
			winners++
		}
	}

	share := 1 / float64(winners)
	for i, rank := range e.ranks {
		if rank == best {
			e.scores[i] += share
			if winners == 1 {
				e.wins[i]++
			} else {
				e.ties[i]++
			}
		}
	}
}
