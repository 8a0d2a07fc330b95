package allin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/railbird/railbird/internal/handlog"
	"github.com/railbird/railbird/poker"
)

func TestLayerPots(t *testing.T) {
	tests := []struct {
		name     string
		contribs []Contribution
		want     []SidePot
	}{
		{
			name: "ascending stacks partition into shrinking layers",
			contribs: []Contribution{
				{Player: "short", Amount: 100},
				{Player: "mid", Amount: 200},
				{Player: "deep", Amount: 300},
			},
			want: []SidePot{
				{Amount: 300, Eligible: []string{"deep", "mid", "short"}},
				{Amount: 200, Eligible: []string{"deep", "mid"}},
				{Amount: 100, Eligible: []string{"deep"}},
			},
		},
		{
			name: "equal contributions make a single pot",
			contribs: []Contribution{
				{Player: "a", Amount: 150},
				{Player: "b", Amount: 150},
				{Player: "c", Amount: 150},
			},
			want: []SidePot{
				{Amount: 450, Eligible: []string{"a", "b", "c"}},
			},
		},
		{
			name: "folded player funds pots but wins nothing",
			contribs: []Contribution{
				{Player: "folder", Amount: 50, Folded: true},
				{Player: "a", Amount: 200},
				{Player: "b", Amount: 200},
			},
			want: []SidePot{
				{Amount: 150, Eligible: []string{"a", "b"}},
				{Amount: 300, Eligible: []string{"a", "b"}},
			},
		},
		{
			name: "zero contributions ignored",
			contribs: []Contribution{
				{Player: "bb", Amount: 100},
				{Player: "sitout", Amount: 0},
				{Player: "sb", Amount: 100},
			},
			want: []SidePot{
				{Amount: 200, Eligible: []string{"bb", "sb"}},
			},
		},
		{
			name:     "empty input",
			contribs: nil,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, LayerPots(tt.contribs))
		})
	}
}

func TestLayerPotsConservesChips(t *testing.T) {
	contribs := []Contribution{
		{Player: "a", Amount: 75},
		{Player: "b", Amount: 220},
		{Player: "c", Amount: 220},
		{Player: "d", Amount: 410},
		{Player: "e", Amount: 30, Folded: true},
	}

	total := 0
	for _, c := range contribs {
		total += c.Amount
	}
	layered := 0
	for _, pot := range LayerPots(contribs) {
		layered += pot.Amount
	}
	require.Equal(t, total, layered)
}

func testHand(t *testing.T) *handlog.Hand {
	t.Helper()
	return &handlog.Hand{
		Number:      42,
		ID:          "h42",
		Seats:       []string{"Alice @ a", "Bob @ b", "Carol @ c"},
		AllInStreet: handlog.Flop,
		BoardAtAllIn: poker.MustParseCards("2s7h9d"),
		Players: map[string]*handlog.PlayerState{
			"Alice @ a": {
				InitialStack: 500,
				Invested:     500,
				AllIn:        true,
				HoleCards:    poker.MustParseCards("AsAd"),
			},
			"Bob @ b": {
				InitialStack: 800,
				Invested:     500,
				HoleCards:    poker.MustParseCards("KsKd"),
			},
			"Carol @ c": {
				InitialStack: 1000,
				Invested:     60,
				Folded:       true,
			},
		},
		Pot: 1060,
	}
}

func TestFromHand(t *testing.T) {
	event, err := FromHand(testHand(t))
	require.NoError(t, err)

	require.Equal(t, 42, event.HandNumber)
	require.Equal(t, handlog.Flop, event.Street)
	require.Len(t, event.Board, 3)
	require.Len(t, event.Contenders, 2)
	require.Equal(t, 2, event.RevealedCount())
	require.True(t, event.HeadsUp())
	require.Equal(t, 1060, event.TotalPot)

	alice := event.Contender("Alice @ a")
	require.NotNil(t, alice)
	require.True(t, alice.Hole.IsKnown())
	require.Equal(t, "AsAd", alice.Hole.String())
	require.Equal(t, 500, alice.Contribution)

	require.Nil(t, event.Contender("Carol @ c"))

	// Carol's dead 60 caps the first layer; both live players can win
	// either layer, and the layers sum to the recorded pot.
	require.Len(t, event.Pots, 2)
	require.Equal(t, 180, event.Pots[0].Amount)
	require.Equal(t, 880, event.Pots[1].Amount)
	for _, pot := range event.Pots {
		require.Equal(t, []string{"Alice @ a", "Bob @ b"}, pot.Eligible)
	}
	require.Equal(t, event.TotalPot, event.Pots[0].Amount+event.Pots[1].Amount)
}

func TestFromHandNoAllIn(t *testing.T) {
	hand := testHand(t)
	hand.AllInStreet = handlog.StreetNone
	_, err := FromHand(hand)
	require.ErrorIs(t, err, ErrNoAllIn)
}

func TestFromHandTooFewRevealed(t *testing.T) {
	hand := testHand(t)
	hand.Players["Bob @ b"].HoleCards = nil
	_, err := FromHand(hand)
	require.ErrorIs(t, err, ErrInsufficientData)
}

func TestFromHandDuplicateCardRejected(t *testing.T) {
	hand := testHand(t)
	hand.Players["Bob @ b"].HoleCards = poker.MustParseCards("As2h")
	_, err := FromHand(hand)
	require.ErrorIs(t, err, ErrInsufficientData)
}

func TestFromHandUnknownContenderAllowed(t *testing.T) {
	hand := testHand(t)
	hand.Players["Carol @ c"].Folded = false
	hand.Players["Carol @ c"].Invested = 500

	event, err := FromHand(hand)
	require.NoError(t, err)
	require.Len(t, event.Contenders, 3)
	require.Equal(t, 2, event.RevealedCount())

	carol := event.Contender("Carol @ c")
	require.NotNil(t, carol)
	require.False(t, carol.Hole.IsKnown())
	require.Equal(t, "??", carol.Hole.String())
}

func TestHoleCardsPanicsWhenUnknown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	Unknown().Cards()
}

func TestErrorsUnwrap(t *testing.T) {
	hand := testHand(t)
	hand.Players["Bob @ b"].HoleCards = nil
	_, err := FromHand(hand)
	require.True(t, errors.Is(err, ErrInsufficientData))
	require.Contains(t, err.Error(), "hand #42")
}
