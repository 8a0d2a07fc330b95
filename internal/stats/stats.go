// Package stats derives playing-style statistics from parsed hands:
// position-aware action frequencies and showdown range matrices.
package stats

import (
	"sort"

	"github.com/railbird/railbird/internal/handlog"
)

// Counts are one player's raw tallies across observed hands.
type Counts struct {
	Hands     int
	VPIP      int // voluntarily put money in preflop (blinds excluded)
	PFR       int // raised preflop
	CbetOpps  int // was the preflop aggressor and saw the flop first-in
	Cbets     int
	Showdowns int
	WonHands  int
}

// VPIPRate returns VPIP as a fraction of hands, or 0 with no hands.
func (c Counts) VPIPRate() float64 { return rate(c.VPIP, c.Hands) }

// PFRRate returns preflop raise frequency.
func (c Counts) PFRRate() float64 { return rate(c.PFR, c.Hands) }

// CbetRate returns continuation bets over opportunities.
func (c Counts) CbetRate() float64 { return rate(c.Cbets, c.CbetOpps) }

func rate(n, of int) float64 {
	if of == 0 {
		return 0
	}
	return float64(n) / float64(of)
}

// Tracker accumulates per-player statistics over hands. Names are
// canonicalized on the way in; pass nil to keep raw names.
type Tracker struct {
	canonicalize func(string) string
	players      map[string]*Counts
	ranges       map[string]*RangeMatrix
}

// NewTracker builds an empty tracker.
func NewTracker(canonicalize func(string) string) *Tracker {
	return &Tracker{
		canonicalize: canonicalize,
		players:      make(map[string]*Counts),
		ranges:       make(map[string]*RangeMatrix),
	}
}

func (t *Tracker) name(raw string) string {
	if t.canonicalize != nil {
		return t.canonicalize(raw)
	}
	return raw
}

func (t *Tracker) counts(raw string) *Counts {
	name := t.name(raw)
	c, ok := t.players[name]
	if !ok {
		c = &Counts{}
		t.players[name] = c
	}
	return c
}

// Observe folds one hand into the tallies.
func (t *Tracker) Observe(hand *handlog.Hand) {
	for _, player := range hand.Seats {
		t.counts(player).Hands++
	}

	vpip := make(map[string]bool)
	pfr := make(map[string]bool)
	aggressor := ""
	for _, action := range hand.Actions {
		if action.Street != handlog.Preflop {
			continue
		}
		switch action.Type {
		case handlog.ActionCall, handlog.ActionBet:
			vpip[action.Player] = true
		case handlog.ActionRaise:
			vpip[action.Player] = true
			pfr[action.Player] = true
			aggressor = action.Player
		}
	}
	for player := range vpip {
		t.counts(player).VPIP++
	}
	for player := range pfr {
		t.counts(player).PFR++
	}

	t.observeCbet(hand, aggressor)

	for player, ps := range hand.Players {
		if len(ps.HoleCards) == 2 {
			t.counts(player).Showdowns++
			name := t.name(player)
			m, ok := t.ranges[name]
			if !ok {
				m = &RangeMatrix{}
				t.ranges[name] = m
			}
			m.Add(ps.HoleCards[0], ps.HoleCards[1])
		}
		if hand.Payouts[player] > 0 {
			t.counts(player).WonHands++
		}
	}
}

// observeCbet credits the preflop aggressor with a continuation bet
// opportunity when they act on the flop before any bet, and a cbet when
// that action is a bet.
func (t *Tracker) observeCbet(hand *handlog.Hand, aggressor string) {
	if aggressor == "" {
		return
	}
	for _, action := range hand.Actions {
		if action.Street != handlog.Flop {
			continue
		}
		if action.Player == aggressor {
			if action.Type == handlog.ActionBet || action.Type == handlog.ActionCheck {
				c := t.counts(aggressor)
				c.CbetOpps++
				if action.Type == handlog.ActionBet {
					c.Cbets++
				}
			}
			return
		}
		if action.Type == handlog.ActionBet {
			// Donk bet ahead of the aggressor: no clean opportunity.
			return
		}
	}
}

// Player returns one player's counts and whether any exist.
func (t *Tracker) Player(raw string) (Counts, bool) {
	c, ok := t.players[t.name(raw)]
	if !ok {
		return Counts{}, false
	}
	return *c, true
}

// Range returns a player's observed showdown range, or nil.
func (t *Tracker) Range(raw string) *RangeMatrix {
	return t.ranges[t.name(raw)]
}

// PlayerStat pairs a canonical name with its counts for reporting.
type PlayerStat struct {
	Player string
	Counts Counts
}

// Players returns all tallies sorted by hands observed, then name.
func (t *Tracker) Players() []PlayerStat {
	out := make([]PlayerStat, 0, len(t.players))
	for name, c := range t.players {
		out = append(out, PlayerStat{Player: name, Counts: *c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Counts.Hands != out[j].Counts.Hands {
			return out[i].Counts.Hands > out[j].Counts.Hands
		}
		return out[i].Player < out[j].Player
	})
	return out
}
