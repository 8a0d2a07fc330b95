// Package report renders analysis results for the terminal and for
// markdown export.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"github.com/railbird/railbird/internal/ev"
	"github.com/railbird/railbird/internal/session"
	"github.com/railbird/railbird/internal/stats"
	"github.com/railbird/railbird/poker"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

func signed(n int) string {
	s := fmt.Sprintf("%+d", n)
	if n > 0 {
		return winStyle.Render(s)
	}
	if n < 0 {
		return lossStyle.Render(s)
	}
	return s
}

func signedFloat(f float64) string {
	s := fmt.Sprintf("%+.1f", f)
	if f > 0.05 {
		return winStyle.Render(s)
	}
	if f < -0.05 {
		return lossStyle.Render(s)
	}
	return s
}

// WriteEVTotals renders per-player all-in totals.
func WriteEVTotals(w io.Writer, totals []ev.PlayerTotals) {
	fmt.Fprintln(w, titleStyle.Render("All-in EV"))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, headerStyle.Render("Player\tAll-ins\tActual\tEV\tLuck"))
	for _, t := range totals {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%+.1f\t%s\n",
			t.Player, t.Hands, signed(t.Actual), t.EV, signedFloat(t.Luck))
	}
	tw.Flush()
}

// WriteEVRecords renders each confrontation, worst luck first, then a
// skip summary.
func WriteEVRecords(w io.Writer, batch *ev.Batch) {
	fmt.Fprintln(w, titleStyle.Render("All-in confrontations"))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, headerStyle.Render("Hand\tStreet\tBoard\tPlayer\tCards\tEV\tActual\tLuck"))
	for _, record := range batch.Records {
		board := boardString(record)
		for _, result := range record.Results {
			fmt.Fprintf(tw, "#%d\t%s\t%s\t%s\t%s\t%+.1f\t%s\t%s\n",
				record.HandNumber, record.Street, board,
				result.Player, result.Hole, result.EV,
				signed(result.Actual), signedFloat(result.Luck))
			board = "" // print once per record
		}
	}
	tw.Flush()

	if len(batch.Skipped) > 0 {
		fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("skipped %d hands:", len(batch.Skipped))))
		for _, skip := range batch.Skipped {
			fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("  hand #%d (%s): %s",
				skip.HandNumber, skip.HandID, skip.Reason)))
		}
	}
}

func boardString(record *ev.Record) string {
	return strings.Join(lo.Map(record.Board, func(c poker.Card, _ int) string {
		return c.String()
	}), " ")
}

// LuckExtremes returns the luckiest and unluckiest single results in a
// batch, or nil for an empty batch.
func LuckExtremes(batch *ev.Batch) (luckiest, unluckiest *ev.PlayerResult) {
	for _, record := range batch.Records {
		for i := range record.Results {
			result := &record.Results[i]
			if luckiest == nil || result.Luck > luckiest.Luck {
				luckiest = result
			}
			if unluckiest == nil || result.Luck < unluckiest.Luck {
				unluckiest = result
			}
		}
	}
	return luckiest, unluckiest
}

// LuckSummary returns the mean and standard deviation of luck across
// every all-in result in a batch. Fewer than two results have no spread.
func LuckSummary(batch *ev.Batch) (mean, stddev float64) {
	var lucks []float64
	for _, record := range batch.Records {
		for _, result := range record.Results {
			lucks = append(lucks, result.Luck)
		}
	}
	if len(lucks) == 0 {
		return 0, 0
	}
	mean = stat.Mean(lucks, nil)
	if len(lucks) > 1 {
		stddev = stat.StdDev(lucks, nil)
	}
	return mean, stddev
}

// WriteSessions renders per-player session records.
func WriteSessions(w io.Writer, summaries []session.PlayerSummary) {
	fmt.Fprintln(w, titleStyle.Render("Sessions"))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, headerStyle.Render("Player\tSessions\tW-L\tNet\tBest\tWorst\tMean\tStdDev"))
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%d\t%d-%d\t%s\t%s\t%s\t%+.1f\t%.1f\n",
			s.Player, s.Sessions, s.Wins, s.Losses,
			signed(s.Net), signed(s.BiggestWin), signed(s.BiggestLoss),
			s.MeanNet, s.StdDevNet)
	}
	tw.Flush()
}

// WriteStats renders playing-style frequencies.
func WriteStats(w io.Writer, players []stats.PlayerStat) {
	fmt.Fprintln(w, titleStyle.Render("Player statistics"))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, headerStyle.Render("Player\tHands\tVPIP\tPFR\tCbet\tShowdowns"))
	for _, p := range players {
		fmt.Fprintf(tw, "%s\t%d\t%.0f%%\t%.0f%%\t%s\t%d\n",
			p.Player, p.Counts.Hands,
			p.Counts.VPIPRate()*100, p.Counts.PFRRate()*100,
			cbetCell(p.Counts), p.Counts.Showdowns)
	}
	tw.Flush()
}

func cbetCell(c stats.Counts) string {
	if c.CbetOpps == 0 {
		return dimStyle.Render("-")
	}
	return fmt.Sprintf("%.0f%%", c.CbetRate()*100)
}

// SortTotalsByLuck orders totals from unluckiest to luckiest.
func SortTotalsByLuck(totals []ev.PlayerTotals) {
	sort.Slice(totals, func(i, j int) bool { return totals[i].Luck < totals[j].Luck })
}
