package stats

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/railbird/railbird/internal/handlog"
	"github.com/railbird/railbird/poker"
)

func TestPositions(t *testing.T) {
	tests := []struct {
		players int
		want    []string
	}{
		{2, []string{"BTN/SB", "BB"}},
		{3, []string{"BTN", "SB", "BB"}},
		{6, []string{"BTN", "SB", "BB", "UTG", "HJ", "CO"}},
		{9, []string{"BTN", "SB", "BB", "UTG", "UTG+1", "MP", "MP+1", "HJ", "CO"}},
		{1, nil},
		{11, nil},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Positions(tt.players))
	}
}

func TestPositionOf(t *testing.T) {
	hand := &handlog.Hand{
		Seats:  []string{"a", "b", "c", "d", "e", "f"},
		Dealer: "c",
	}

	require.Equal(t, "BTN", PositionOf(hand, "c"))
	require.Equal(t, "SB", PositionOf(hand, "d"))
	require.Equal(t, "BB", PositionOf(hand, "e"))
	require.Equal(t, "UTG", PositionOf(hand, "f"))
	require.Equal(t, "HJ", PositionOf(hand, "a"))
	require.Equal(t, "CO", PositionOf(hand, "b"))
	require.Equal(t, "", PositionOf(hand, "nobody"))
}

func statsHand() *handlog.Hand {
	return &handlog.Hand{
		Number: 1,
		Seats:  []string{"btn", "sb", "bb"},
		Dealer: "btn",
		Players: map[string]*handlog.PlayerState{
			"btn": {HoleCards: poker.MustParseCards("AsKs")},
			"sb":  {},
			"bb":  {},
		},
		Actions: []handlog.Action{
			{Player: "sb", Type: handlog.ActionSmallBlind, Street: handlog.Preflop, Amount: 10},
			{Player: "bb", Type: handlog.ActionBigBlind, Street: handlog.Preflop, Amount: 20},
			{Player: "btn", Type: handlog.ActionRaise, Street: handlog.Preflop, Amount: 60},
			{Player: "sb", Type: handlog.ActionFold, Street: handlog.Preflop},
			{Player: "bb", Type: handlog.ActionCall, Street: handlog.Preflop, Amount: 40},
			{Player: "bb", Type: handlog.ActionCheck, Street: handlog.Flop},
			{Player: "btn", Type: handlog.ActionBet, Street: handlog.Flop, Amount: 80},
			{Player: "bb", Type: handlog.ActionFold, Street: handlog.Flop},
		},
		Payouts: map[string]int{"btn": 130},
	}
}

func TestTrackerObserve(t *testing.T) {
	tracker := NewTracker(nil)
	tracker.Observe(statsHand())

	btn, ok := tracker.Player("btn")
	require.True(t, ok)
	require.Equal(t, 1, btn.Hands)
	require.Equal(t, 1, btn.VPIP)
	require.Equal(t, 1, btn.PFR)
	require.Equal(t, 1, btn.CbetOpps)
	require.Equal(t, 1, btn.Cbets)
	require.Equal(t, 1, btn.Showdowns)
	require.Equal(t, 1, btn.WonHands)
	require.Equal(t, 1.0, btn.VPIPRate())
	require.Equal(t, 1.0, btn.CbetRate())

	// Blinds alone are not voluntary.
	sb, _ := tracker.Player("sb")
	require.Equal(t, 0, sb.VPIP)
	bb, _ := tracker.Player("bb")
	require.Equal(t, 1, bb.VPIP)
	require.Equal(t, 0, bb.PFR)
}

func TestTrackerCheckIsCbetOpportunityOnly(t *testing.T) {
	hand := statsHand()
	hand.Actions[6] = handlog.Action{Player: "btn", Type: handlog.ActionCheck, Street: handlog.Flop}

	tracker := NewTracker(nil)
	tracker.Observe(hand)

	btn, _ := tracker.Player("btn")
	require.Equal(t, 1, btn.CbetOpps)
	require.Equal(t, 0, btn.Cbets)
	require.Equal(t, 0.0, btn.CbetRate())
}

func TestTrackerDonkBetRemovesOpportunity(t *testing.T) {
	hand := statsHand()
	hand.Actions[5] = handlog.Action{Player: "bb", Type: handlog.ActionBet, Street: handlog.Flop, Amount: 40}

	tracker := NewTracker(nil)
	tracker.Observe(hand)

	btn, _ := tracker.Player("btn")
	require.Equal(t, 0, btn.CbetOpps)
}

func TestTrackerCanonicalizes(t *testing.T) {
	tracker := NewTracker(func(string) string { return "everyone" })
	tracker.Observe(statsHand())

	all, ok := tracker.Player("whatever")
	require.True(t, ok)
	require.Equal(t, 3, all.Hands)

	players := tracker.Players()
	require.Len(t, players, 1)
	require.Equal(t, "everyone", players[0].Player)
}

func TestRangeMatrix(t *testing.T) {
	var m RangeMatrix
	cards := poker.MustParseCards("AsKs")
	m.Add(cards[0], cards[1])
	cards = poker.MustParseCards("KdAh")
	m.Add(cards[0], cards[1])
	cards = poker.MustParseCards("QcQd")
	m.Add(cards[0], cards[1])

	// AKs upper triangle, AKo lower, QQ diagonal.
	require.Equal(t, 1, m.Count(0, 1))
	require.Equal(t, 1, m.Count(1, 0))
	require.Equal(t, 1, m.Count(2, 2))
	require.Equal(t, 3, m.Total())
	require.InDelta(t, 1.0/3, m.Frequency(0, 1), 1e-9)
}

func TestRangeLabels(t *testing.T) {
	require.Equal(t, "AA", Label(0, 0))
	require.Equal(t, "AKs", Label(0, 1))
	require.Equal(t, "AKo", Label(1, 0))
	require.Equal(t, "22", Label(12, 12))
	require.Equal(t, "T9s", Label(4, 5))
	require.Equal(t, "T9o", Label(5, 4))
}

func TestTrackerShowdownRange(t *testing.T) {
	tracker := NewTracker(nil)
	tracker.Observe(statsHand())

	r := tracker.Range("btn")
	require.NotNil(t, r)
	require.Equal(t, 1, r.Count(0, 1)) // AKs
	require.Nil(t, tracker.Range("sb"))
}
