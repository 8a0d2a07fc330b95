package main

import (
	"context"
	"os"

	"github.com/railbird/railbird/internal/equity"
	"github.com/railbird/railbird/internal/ev"
	"github.com/railbird/railbird/internal/report"
)

// EVCmd evaluates every all-in confrontation in the given logs.
type EVCmd struct {
	Paths   []string `arg:"" optional:"" help:"Log CSV files (default: discover in data dir)"`
	Workers int      `help:"Parallel evaluation workers (default: one per CPU)"`
	Limit   int64    `help:"Override the enumeration limit"`
	Totals  bool     `help:"Only print per-player totals"`
}

func (c *EVCmd) Run(g *Globals) error {
	a, err := setup(g)
	if err != nil {
		return err
	}
	paths, err := a.logPaths(c.Paths)
	if err != nil {
		return err
	}
	hands, err := a.loadHands(paths)
	if err != nil {
		return err
	}

	limit := c.Limit
	if limit == 0 {
		limit = a.cfg.Analyzer.EnumerationLimit
	}
	workers := c.Workers
	if workers == 0 {
		workers = a.cfg.Analyzer.Workers
	}

	evaluator := ev.NewEvaluator(equity.NewCalculator(limit))
	batch, err := evaluator.EvaluateAll(context.Background(), hands, workers)
	if err != nil {
		return err
	}
	a.logger.Info("evaluated all-ins",
		"hands", len(hands), "records", len(batch.Records), "skipped", len(batch.Skipped))

	if !c.Totals {
		report.WriteEVRecords(os.Stdout, batch)
	}

	acc := ev.NewAccumulator(a.resolver.Canonical)
	for _, record := range batch.Records {
		acc.Add(record)
	}
	report.WriteEVTotals(os.Stdout, acc.Totals())
	return nil
}
