// Package allin extracts all-in confrontations from parsed hands and
// partitions their pots into layered side pots.
package allin

import (
	"errors"
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/railbird/railbird/internal/handlog"
	"github.com/railbird/railbird/poker"
)

var (
	// ErrNoAllIn marks a hand with no pre-river all-in confrontation.
	ErrNoAllIn = errors.New("no all-in before the river")

	// ErrInsufficientData marks an all-in hand that cannot be evaluated,
	// usually because fewer than two hole-card hands were revealed.
	ErrInsufficientData = errors.New("insufficient data for all-in evaluation")
)

// HoleCards is a player's two hole cards, or the absence of them when the
// hand was mucked without a showdown reveal.
type HoleCards struct {
	cards [2]poker.Card
	known bool
}

// Known builds revealed hole cards.
func Known(a, b poker.Card) HoleCards {
	return HoleCards{cards: [2]poker.Card{a, b}, known: true}
}

// Unknown builds the mucked-hand variant.
func Unknown() HoleCards {
	return HoleCards{}
}

// IsKnown reports whether the cards were revealed.
func (hc HoleCards) IsKnown() bool { return hc.known }

// Cards returns the two hole cards. It panics for the unknown variant;
// callers must check IsKnown first.
func (hc HoleCards) Cards() (poker.Card, poker.Card) {
	if !hc.known {
		panic("allin: Cards called on unknown hole cards")
	}
	return hc.cards[0], hc.cards[1]
}

func (hc HoleCards) String() string {
	if !hc.known {
		return "??"
	}
	return hc.cards[0].String() + hc.cards[1].String()
}

// Contender is a player still live when the money went in.
type Contender struct {
	Player       string
	Hole         HoleCards
	Contribution int
}

// Contribution is one player's total chips put in the pot, used to
// partition layered side pots. Folded players fund pots they can't win.
type Contribution struct {
	Player string
	Amount int
	Folded bool
}

// SidePot is one pot layer and the players eligible to win it.
type SidePot struct {
	Amount   int
	Eligible []string
}

// Event is a fully extracted all-in confrontation, ready for equity
// evaluation: the board as dealt when the money went in, every live
// contender, and the pot partitioned into layers.
type Event struct {
	HandNumber int
	HandID     string
	Street     handlog.Street
	Board      []poker.Card
	Contenders []Contender
	Pots       []SidePot
	TotalPot   int
}

// Contender returns the contender entry for a player, or nil.
func (e *Event) Contender(player string) *Contender {
	for i := range e.Contenders {
		if e.Contenders[i].Player == player {
			return &e.Contenders[i]
		}
	}
	return nil
}

// HeadsUp reports whether exactly two players were live for the pot.
func (e *Event) HeadsUp() bool { return len(e.Contenders) == 2 }

// RevealedCount returns how many contenders showed their hands.
func (e *Event) RevealedCount() int {
	n := 0
	for _, c := range e.Contenders {
		if c.Hole.IsKnown() {
			n++
		}
	}
	return n
}

// FromHand extracts the all-in event from a parsed hand. Hands without a
// pre-river all-in return ErrNoAllIn; all-in hands with fewer than two
// revealed contenders, or with inconsistent cards, return
// ErrInsufficientData.
func FromHand(hand *handlog.Hand) (*Event, error) {
	if hand.AllInStreet == handlog.StreetNone {
		return nil, ErrNoAllIn
	}

	var (
		contenders []Contender
		contribs   []Contribution
	)
	for _, player := range hand.Seats {
		ps := hand.Players[player]
		if ps.Invested > 0 || !ps.Folded {
			contribs = append(contribs, Contribution{
				Player: player,
				Amount: ps.Invested,
				Folded: ps.Folded,
			})
		}
		if ps.Folded {
			continue
		}
		hole := Unknown()
		if len(ps.HoleCards) == 2 {
			hole = Known(ps.HoleCards[0], ps.HoleCards[1])
		}
		contenders = append(contenders, Contender{
			Player:       player,
			Hole:         hole,
			Contribution: ps.Invested,
		})
	}

	event := &Event{
		HandNumber: hand.Number,
		HandID:     hand.ID,
		Street:     hand.AllInStreet,
		Board:      append([]poker.Card(nil), hand.BoardAtAllIn...),
		Contenders: contenders,
		Pots:       LayerPots(contribs),
		TotalPot:   hand.Pot,
	}

	if len(contenders) < 2 || event.RevealedCount() < 2 {
		return nil, fmt.Errorf("%w: hand #%d revealed %d of %d contenders",
			ErrInsufficientData, hand.Number, event.RevealedCount(), len(contenders))
	}
	if err := checkCardConsistency(event); err != nil {
		return nil, fmt.Errorf("%w: hand #%d: %v", ErrInsufficientData, hand.Number, err)
	}
	return event, nil
}

// checkCardConsistency rejects events where a card appears twice across
// the board and the revealed hands.
func checkCardConsistency(event *Event) error {
	var seen poker.Hand
	add := func(c poker.Card) error {
		if seen.HasCard(c) {
			return fmt.Errorf("card %s appears twice", c)
		}
		seen.AddCard(c)
		return nil
	}
	for _, c := range event.Board {
		if err := add(c); err != nil {
			return err
		}
	}
	for _, contender := range event.Contenders {
		if !contender.Hole.IsKnown() {
			continue
		}
		a, b := contender.Hole.Cards()
		if err := add(a); err != nil {
			return err
		}
		if err := add(b); err != nil {
			return err
		}
	}
	return nil
}

// LayerPots partitions contributions into side pots. Each layer spans
// from the previous contribution level up to the next distinct one and
// is funded by every player who reached it; only unfolded players are
// eligible to win a layer. Output is deterministic: layers ascend by
// contribution level and eligible lists are sorted by name.
func LayerPots(contribs []Contribution) []SidePot {
	funded := lo.Filter(contribs, func(c Contribution, _ int) bool { return c.Amount > 0 })
	if len(funded) == 0 {
		return nil
	}

	sort.SliceStable(funded, func(i, j int) bool {
		return funded[i].Amount < funded[j].Amount
	})

	var pots []SidePot
	prevLevel := 0
	for i := 0; i < len(funded); i++ {
		level := funded[i].Amount

		// Everyone from i onward reached this level and funds the layer;
		// the folded among them still pay but cannot win.
		contributors := len(funded) - i
		var eligible []string
		for j := i; j < len(funded); j++ {
			if !funded[j].Folded {
				eligible = append(eligible, funded[j].Player)
			}
		}
		sort.Strings(eligible)

		amount := (level - prevLevel) * contributors
		if amount > 0 && len(eligible) > 0 {
			pots = append(pots, SidePot{Amount: amount, Eligible: eligible})
		}
		prevLevel = level

		for i+1 < len(funded) && funded[i+1].Amount == level {
			i++
		}
	}
	return pots
}
