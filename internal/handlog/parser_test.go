package handlog

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/railbird/railbird/poker"
)

func boardString(cards []poker.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

const (
	alice = "Alice @ aaa111"
	bob   = "Bob @ bbb222"
	carol = "Carol @ ccc333"
)

// logScript builds ordered entries from plain text lines.
func logScript(lines ...string) []Entry {
	base := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)
	entries := make([]Entry, len(lines))
	for i, line := range lines {
		entries[i] = Entry{
			At:    base.Add(time.Duration(i) * time.Second),
			Order: int64(i),
			Text:  line,
		}
	}
	return entries
}

func TestParseSimpleHand(t *testing.T) {
	entries := logScript(
		fmt.Sprintf(`-- starting hand #1 (id: abc123)  (No Limit Texas Hold'em) (dealer: "%s") --`, alice),
		fmt.Sprintf(`Player stacks: #1 "%s" (1000) | #2 "%s" (1500) | #3 "%s" (800)`, alice, bob, carol),
		fmt.Sprintf(`"%s" posts a small blind of 10`, bob),
		fmt.Sprintf(`"%s" posts a big blind of 20`, carol),
		fmt.Sprintf(`"%s" raises to 60`, alice),
		fmt.Sprintf(`"%s" calls 60`, bob),
		fmt.Sprintf(`"%s" folds`, carol),
		`Flop:  [2♠, K♥, 10♦]`,
		fmt.Sprintf(`"%s" checks`, bob),
		fmt.Sprintf(`"%s" bets 80`, alice),
		fmt.Sprintf(`"%s" folds`, bob),
		fmt.Sprintf(`Uncalled bet of 80 returned to "%s"`, alice),
		fmt.Sprintf(`"%s" collected 140 from pot`, alice),
		`-- ending hand #1 --`,
	)

	hands, skips := NewParser(nil).ParseEntries(entries)
	require.Empty(t, skips.Hands)
	require.Len(t, hands, 1)

	hand := hands[0]
	require.Equal(t, 1, hand.Number)
	require.Equal(t, "abc123", hand.ID)
	require.Equal(t, alice, hand.Dealer)
	require.Equal(t, []string{alice, bob, carol}, hand.Seats)
	require.Equal(t, bob, hand.SmallBlindPlayer)
	require.Equal(t, carol, hand.BigBlindPlayer)

	require.Equal(t, 60, hand.Players[alice].Invested) // 140 in, 80 returned
	require.Equal(t, 60, hand.Players[bob].Invested) // 10 blind, then called to 60
	require.Equal(t, 20, hand.Players[carol].Invested)
	require.True(t, hand.Players[carol].Folded)
	require.False(t, hand.Players[alice].Folded)

	require.Equal(t, 140, hand.Pot)
	require.Equal(t, 140, hand.Payouts[alice])
	require.Equal(t, 80, hand.Net(alice))
	require.Equal(t, -60, hand.Net(bob))

	require.Len(t, hand.Board, 3)
	require.Equal(t, "2s Kh Td", boardString(hand.Board))
	require.Equal(t, StreetNone, hand.AllInStreet)
}

func TestParseRaiseToIsStreetTotal(t *testing.T) {
	entries := logScript(
		fmt.Sprintf(`-- starting hand #5 (id: x)  (dealer: "%s") --`, carol),
		fmt.Sprintf(`Player stacks: #1 "%s" (1000) | #2 "%s" (1000) | #3 "%s" (1000)`, alice, bob, carol),
		fmt.Sprintf(`"%s" posts a small blind of 10`, alice),
		fmt.Sprintf(`"%s" posts a big blind of 20`, bob),
		fmt.Sprintf(`"%s" raises to 60`, carol),
		// Alice already has 10 in: raising to 180 adds 170 more.
		fmt.Sprintf(`"%s" raises to 180`, alice),
		fmt.Sprintf(`"%s" folds`, bob),
		fmt.Sprintf(`"%s" calls 180`, carol),
		`Flop:  [2♠, 7♥, 9♦]`,
		fmt.Sprintf(`"%s" bets 200`, alice),
		fmt.Sprintf(`"%s" folds`, carol),
		fmt.Sprintf(`Uncalled bet of 200 returned to "%s"`, alice),
		fmt.Sprintf(`"%s" collected 380 from pot`, alice),
		`-- ending hand #5 --`,
	)

	hands, skips := NewParser(nil).ParseEntries(entries)
	require.Empty(t, skips.Hands)
	require.Len(t, hands, 1)

	hand := hands[0]
	require.Equal(t, 180, hand.Players[alice].Invested)
	require.Equal(t, 180, hand.Players[carol].Invested)
	require.Equal(t, 20, hand.Players[bob].Invested)
	require.Equal(t, 200, hand.Net(alice))
}

func TestParseAllInCapturesStreetAndBoard(t *testing.T) {
	entries := logScript(
		fmt.Sprintf(`-- starting hand #2 (id: allin1)  (dealer: "%s") --`, bob),
		fmt.Sprintf(`Player stacks: #1 "%s" (500) | #2 "%s" (500)`, alice, bob),
		fmt.Sprintf(`"%s" posts a small blind of 10`, bob),
		fmt.Sprintf(`"%s" posts a big blind of 20`, alice),
		fmt.Sprintf(`"%s" calls 20`, bob),
		fmt.Sprintf(`"%s" checks`, alice),
		`Flop:  [A♠, K♥, 2♦]`,
		fmt.Sprintf(`"%s" bets 480 and go all in`, alice),
		fmt.Sprintf(`"%s" calls 480 and go all in`, bob),
		fmt.Sprintf(`"%s" shows a A♥, Q♣.`, alice),
		fmt.Sprintf(`"%s" shows a K♦, 10♠.`, bob),
		`Turn: A♠, K♥, 2♦ [8♣]`,
		`River: A♠, K♥, 2♦, 8♣ [3♠]`,
		fmt.Sprintf(`"%s" collected 1000 from pot with Pair, A's (combination: A♥, A♠, Q♣, K♥, 8♣)`, alice),
		`-- ending hand #2 --`,
	)

	hands, skips := NewParser(nil).ParseEntries(entries)
	require.Empty(t, skips.Hands)
	require.Len(t, hands, 1)

	hand := hands[0]
	require.Equal(t, Flop, hand.AllInStreet)
	require.Equal(t, "As Kh 2d", boardString(hand.BoardAtAllIn))
	require.Equal(t, "As Kh 2d 8c 3s", boardString(hand.Board))

	require.True(t, hand.Players[alice].AllIn)
	require.True(t, hand.Players[bob].AllIn)
	require.Equal(t, "Ah Qc", boardString(hand.Players[alice].HoleCards))
	require.Equal(t, "Kd Ts", boardString(hand.Players[bob].HoleCards))

	require.Equal(t, "Pair, A's", hand.WinningHand)
	require.Equal(t, 1000, hand.Payouts[alice])
	require.Equal(t, 500, hand.Net(alice))
	require.Equal(t, -500, hand.Net(bob))
}

func TestParseRiverAllInNotFlagged(t *testing.T) {
	entries := logScript(
		fmt.Sprintf(`-- starting hand #3 (id: riv)  (dealer: "%s") --`, bob),
		fmt.Sprintf(`Player stacks: #1 "%s" (500) | #2 "%s" (500)`, alice, bob),
		fmt.Sprintf(`"%s" posts a small blind of 10`, bob),
		fmt.Sprintf(`"%s" posts a big blind of 20`, alice),
		fmt.Sprintf(`"%s" calls 20`, bob),
		fmt.Sprintf(`"%s" checks`, alice),
		`Flop:  [A♠, K♥, 2♦]`,
		fmt.Sprintf(`"%s" checks`, alice),
		fmt.Sprintf(`"%s" checks`, bob),
		`Turn: A♠, K♥, 2♦ [8♣]`,
		fmt.Sprintf(`"%s" checks`, alice),
		fmt.Sprintf(`"%s" checks`, bob),
		`River: A♠, K♥, 2♦, 8♣ [3♠]`,
		fmt.Sprintf(`"%s" bets 480 and go all in`, alice),
		fmt.Sprintf(`"%s" folds`, bob),
		fmt.Sprintf(`Uncalled bet of 480 returned to "%s"`, alice),
		fmt.Sprintf(`"%s" collected 40 from pot`, alice),
		`-- ending hand #3 --`,
	)

	hands, skips := NewParser(nil).ParseEntries(entries)
	require.Empty(t, skips.Hands)
	require.Len(t, hands, 1)

	hand := hands[0]
	require.Equal(t, StreetNone, hand.AllInStreet)
	require.False(t, hand.Players[alice].AllIn)
}

func TestParseSkipAccounting(t *testing.T) {
	var entries []Entry
	// Nine clean hands and one with a malformed showdown line.
	for i := 1; i <= 10; i++ {
		show := fmt.Sprintf(`"%s" shows a A♥, Q♣.`, alice)
		if i == 7 {
			show = fmt.Sprintf(`"%s" shows a A♥.`, alice)
		}
		entries = append(entries, logScript(
			fmt.Sprintf(`-- starting hand #%d (id: h%d)  (dealer: "%s") --`, i, i, alice),
			fmt.Sprintf(`Player stacks: #1 "%s" (1000) | #2 "%s" (1000)`, alice, bob),
			fmt.Sprintf(`"%s" posts a small blind of 10`, alice),
			fmt.Sprintf(`"%s" posts a big blind of 20`, bob),
			fmt.Sprintf(`"%s" calls 20`, alice),
			fmt.Sprintf(`"%s" checks`, bob),
			show,
			fmt.Sprintf(`"%s" collected 40 from pot`, alice),
			fmt.Sprintf(`-- ending hand #%d --`, i),
		)...)
	}

	hands, skips := NewParser(nil).ParseEntries(entries)
	require.Len(t, hands, 9)
	require.Equal(t, 1, skips.Count())
	require.Equal(t, 7, skips.Hands[0].Number)
	require.Equal(t, "h7", skips.Hands[0].ID)

	for _, hand := range hands {
		require.NotEqual(t, 7, hand.Number)
	}
}

func TestParseUnterminatedHandDropped(t *testing.T) {
	entries := logScript(
		fmt.Sprintf(`-- starting hand #9 (id: cut)  (dealer: "%s") --`, alice),
		fmt.Sprintf(`Player stacks: #1 "%s" (1000) | #2 "%s" (1000)`, alice, bob),
		fmt.Sprintf(`"%s" posts a small blind of 10`, alice),
	)

	hands, skips := NewParser(nil).ParseEntries(entries)
	require.Empty(t, hands)
	require.Equal(t, 1, skips.Count())
	require.Equal(t, "hand never ended", skips.Hands[0].Reason)
}

func TestParseDeadButtonDealerInference(t *testing.T) {
	entries := logScript(
		`-- starting hand #4 (id: db) (No Limit Texas Hold'em) --`,
		fmt.Sprintf(`Player stacks: #1 "%s" (1000) | #2 "%s" (1000) | #3 "%s" (1000)`, alice, bob, carol),
		fmt.Sprintf(`"%s" posts a small blind of 10`, bob),
		fmt.Sprintf(`"%s" posts a big blind of 20`, carol),
		fmt.Sprintf(`"%s" folds`, alice),
		fmt.Sprintf(`"%s" folds`, bob),
		fmt.Sprintf(`"%s" collected 30 from pot`, carol),
		`-- ending hand #4 --`,
	)

	hands, skips := NewParser(nil).ParseEntries(entries)
	require.Empty(t, skips.Hands)
	require.Len(t, hands, 1)
	require.Equal(t, alice, hands[0].Dealer)
}

func TestSortEntries(t *testing.T) {
	entries := []Entry{
		{Order: 3, Text: "c"},
		{Order: 1, Text: "a"},
		{Order: 2, Text: "b"},
	}
	SortEntries(entries)
	require.Equal(t, "a", entries[0].Text)
	require.Equal(t, "b", entries[1].Text)
	require.Equal(t, "c", entries[2].Text)
}
