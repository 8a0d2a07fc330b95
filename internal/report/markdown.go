package report

import (
	"fmt"
	"io"

	"github.com/railbird/railbird/internal/ev"
	"github.com/railbird/railbird/internal/session"
)

// WriteMarkdown emits a shareable summary of the batch: totals, the
// luck extremes, and session records.
func WriteMarkdown(w io.Writer, totals []ev.PlayerTotals, batch *ev.Batch, summaries []session.PlayerSummary) {
	fmt.Fprintln(w, "# Session report")
	fmt.Fprintln(w)

	if len(totals) > 0 {
		fmt.Fprintln(w, "## All-in EV")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Player | All-ins | Actual | EV | Luck |")
		fmt.Fprintln(w, "|---|---:|---:|---:|---:|")
		for _, t := range totals {
			fmt.Fprintf(w, "| %s | %d | %+d | %+.1f | %+.1f |\n",
				t.Player, t.Hands, t.Actual, t.EV, t.Luck)
		}
		fmt.Fprintln(w)
	}

	if batch != nil {
		if luckiest, unluckiest := LuckExtremes(batch); luckiest != nil {
			fmt.Fprintf(w, "Luckiest: **%s** (%s, %+.1f over expectation). ",
				luckiest.Player, luckiest.Hole, luckiest.Luck)
			fmt.Fprintf(w, "Unluckiest: **%s** (%s, %+.1f under expectation).\n\n",
				unluckiest.Player, unluckiest.Hole, unluckiest.Luck)
		}
		if mean, stddev := LuckSummary(batch); stddev > 0 {
			fmt.Fprintf(w, "Luck across %d results: mean %+.1f, stddev %.1f.\n\n",
				resultCount(batch), mean, stddev)
		}
		if len(batch.Skipped) > 0 {
			fmt.Fprintf(w, "%d hands skipped during evaluation.\n\n", len(batch.Skipped))
		}
	}

	if len(summaries) > 0 {
		writeSessionTable(w, summaries)
	}
}

func resultCount(batch *ev.Batch) int {
	n := 0
	for _, record := range batch.Records {
		n += len(record.Results)
	}
	return n
}

func writeSessionTable(w io.Writer, summaries []session.PlayerSummary) {
	fmt.Fprintln(w, "## Sessions")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Player | Sessions | W-L | Net | Best | Worst |")
	fmt.Fprintln(w, "|---|---:|---:|---:|---:|---:|")
	for _, s := range summaries {
		fmt.Fprintf(w, "| %s | %d | %d-%d | %+d | %+d | %+d |\n",
			s.Player, s.Sessions, s.Wins, s.Losses, s.Net, s.BiggestWin, s.BiggestLoss)
	}
}
