package main

import (
	"context"
	"os"

	"github.com/railbird/railbird/internal/equity"
	"github.com/railbird/railbird/internal/ev"
	"github.com/railbird/railbird/internal/ingest"
	"github.com/railbird/railbird/internal/report"
	"github.com/railbird/railbird/internal/session"
)

// ReportCmd writes a full markdown report: all-in EV plus session
// results from whatever the data directory holds.
type ReportCmd struct {
	Output  string `short:"o" help:"Write to file instead of stdout"`
	Workers int    `help:"Parallel evaluation workers (default: one per CPU)"`
}

func (c *ReportCmd) Run(g *Globals) error {
	a, err := setup(g)
	if err != nil {
		return err
	}

	logs, ledgers, err := ingest.Discover(a.cfg.Analyzer.DataDir)
	if err != nil {
		return err
	}

	var totals []ev.PlayerTotals
	var batch *ev.Batch
	if len(logs) > 0 {
		hands, err := a.loadHands(logs)
		if err != nil {
			return err
		}
		evaluator := ev.NewEvaluator(equity.NewCalculator(a.cfg.Analyzer.EnumerationLimit))
		workers := c.Workers
		if workers == 0 {
			workers = a.cfg.Analyzer.Workers
		}
		if batch, err = evaluator.EvaluateAll(context.Background(), hands, workers); err != nil {
			return err
		}
		acc := ev.NewAccumulator(a.resolver.Canonical)
		for _, record := range batch.Records {
			acc.Add(record)
		}
		totals = acc.Totals()
	}

	var summaries []session.PlayerSummary
	if len(ledgers) > 0 {
		files := make([][]ingest.LedgerRow, 0, len(ledgers))
		for _, path := range ledgers {
			rows, err := ingest.LoadLedger(path)
			if err != nil {
				return err
			}
			files = append(files, rows)
		}
		summaries = session.Summarize(session.Build(files, a.resolver.Canonical))
	}

	out := os.Stdout
	if c.Output != "" {
		file, err := os.Create(c.Output)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}
	report.WriteMarkdown(out, totals, batch, summaries)
	return nil
}
