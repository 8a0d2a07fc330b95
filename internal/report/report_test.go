package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/railbird/railbird/internal/allin"
	"github.com/railbird/railbird/internal/ev"
	"github.com/railbird/railbird/internal/handlog"
	"github.com/railbird/railbird/internal/session"
	"github.com/railbird/railbird/internal/stats"
	"github.com/railbird/railbird/poker"
)

func sampleBatch() *ev.Batch {
	cards := poker.MustParseCards("AsAdKhQh")
	return &ev.Batch{
		Records: []*ev.Record{
			{
				HandNumber: 3,
				HandID:     "abc",
				Street:     handlog.Turn,
				Board:      poker.MustParseCards("2h7h9c4s"),
				Pot:        1000,
				Results: []ev.PlayerResult{
					{
						Player: "dave", Hole: allin.Known(cards[0], cards[1]),
						Invested: 500, Expected: 795.4, EV: 295.4, Actual: 500, Luck: 204.6,
					},
					{
						Player: "erin", Hole: allin.Known(cards[2], cards[3]),
						Invested: 500, Expected: 204.6, EV: -295.4, Actual: -500, Luck: -204.6,
					},
				},
			},
		},
		Skipped: []ev.Skip{
			{HandNumber: 9, HandID: "zzz", Reason: "insufficient data"},
		},
	}
}

func TestWriteEVRecords(t *testing.T) {
	var buf bytes.Buffer
	WriteEVRecords(&buf, sampleBatch())
	out := buf.String()

	require.Contains(t, out, "#3")
	require.Contains(t, out, "dave")
	require.Contains(t, out, "AsAd")
	require.Contains(t, out, "2h 7h 9c 4s")
	require.Contains(t, out, "skipped 1 hands")
	require.Contains(t, out, "hand #9")
}

func TestWriteEVTotals(t *testing.T) {
	var buf bytes.Buffer
	WriteEVTotals(&buf, []ev.PlayerTotals{
		{Player: "dave", Hands: 4, Actual: 900, EV: 420.5, Luck: 479.5},
	})
	out := buf.String()
	require.Contains(t, out, "dave")
	require.Contains(t, out, "+420.5")
}

func TestLuckExtremes(t *testing.T) {
	batch := sampleBatch()
	luckiest, unluckiest := LuckExtremes(batch)
	require.Equal(t, "dave", luckiest.Player)
	require.Equal(t, "erin", unluckiest.Player)

	luckiest, unluckiest = LuckExtremes(&ev.Batch{})
	require.Nil(t, luckiest)
	require.Nil(t, unluckiest)
}

func TestLuckSummary(t *testing.T) {
	// Symmetric heads-up luck: zero mean, spread of the two values.
	mean, stddev := LuckSummary(sampleBatch())
	require.InDelta(t, 0.0, mean, 1e-9)
	require.InDelta(t, 289.3, stddev, 0.1)

	mean, stddev = LuckSummary(&ev.Batch{})
	require.Zero(t, mean)
	require.Zero(t, stddev)
}

func TestWriteSessions(t *testing.T) {
	var buf bytes.Buffer
	WriteSessions(&buf, []session.PlayerSummary{
		{Player: "dave", Sessions: 3, Wins: 2, Losses: 1, Net: 300,
			BiggestWin: 400, BiggestLoss: -150, MeanNet: 100, StdDevNet: 277.3},
	})
	out := buf.String()
	require.Contains(t, out, "dave")
	require.Contains(t, out, "2-1")
}

func TestWriteStats(t *testing.T) {
	var buf bytes.Buffer
	WriteStats(&buf, []stats.PlayerStat{
		{Player: "dave", Counts: stats.Counts{Hands: 100, VPIP: 30, PFR: 20, CbetOpps: 10, Cbets: 7}},
		{Player: "erin", Counts: stats.Counts{Hands: 50}},
	})
	out := buf.String()
	require.Contains(t, out, "30%")
	require.Contains(t, out, "70%")
	// No cbet opportunities renders a dash, not a percentage.
	require.Contains(t, out, "-")
}

func TestWriteRangeHeatmap(t *testing.T) {
	var matrix stats.RangeMatrix
	cards := poker.MustParseCards("AsKs")
	matrix.Add(cards[0], cards[1])

	var buf bytes.Buffer
	WriteRangeHeatmap(&buf, &matrix)
	out := buf.String()

	require.Contains(t, out, "AKs")
	require.Contains(t, out, "72o")
	require.Contains(t, out, "1 combos seen")
	require.Equal(t, 14, strings.Count(out, "\n")) // 13 rows + footer
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	totals := []ev.PlayerTotals{
		{Player: "dave", Hands: 1, Actual: 500, EV: 295.4, Luck: 204.6},
	}
	summaries := []session.PlayerSummary{
		{Player: "dave", Sessions: 2, Wins: 1, Losses: 1, Net: 100, BiggestWin: 400, BiggestLoss: -300},
	}
	WriteMarkdown(&buf, totals, sampleBatch(), summaries)
	out := buf.String()

	require.True(t, strings.HasPrefix(out, "# Session report"))
	require.Contains(t, out, "| dave | 1 | +500 | +295.4 | +204.6 |")
	require.Contains(t, out, "Luckiest: **dave**")
	require.Contains(t, out, "Unluckiest: **erin**")
	require.Contains(t, out, "Luck across 2 results")
	require.Contains(t, out, "1 hands skipped")
	require.Contains(t, out, "| dave | 2 | 1-1 | +100 | +400 | -300 |")
}
