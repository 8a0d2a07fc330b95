package main

import (
	"context"

	"github.com/railbird/railbird/internal/equity"
	"github.com/railbird/railbird/internal/ev"
	"github.com/railbird/railbird/internal/tui"
)

// TuiCmd evaluates all-ins and opens the interactive browser.
type TuiCmd struct {
	Paths   []string `arg:"" optional:"" help:"Log CSV files (default: discover in data dir)"`
	Workers int      `help:"Parallel evaluation workers (default: one per CPU)"`
}

func (c *TuiCmd) Run(g *Globals) error {
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

	evaluator := ev.NewEvaluator(equity.NewCalculator(a.cfg.Analyzer.EnumerationLimit))
	batch, err := evaluator.EvaluateAll(context.Background(), hands, c.Workers)
	if err != nil {
		return err
	}
	return tui.Run(batch)
}
