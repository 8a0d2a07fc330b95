package main

import (
	"os"

	"github.com/railbird/railbird/internal/report"
	"github.com/railbird/railbird/internal/stats"
)

// StatsCmd tallies playing-style statistics across hand logs.
type StatsCmd struct {
	Paths []string `arg:"" optional:"" help:"Log CSV files (default: discover in data dir)"`
}

func (c *StatsCmd) Run(g *Globals) error {
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

	tracker := stats.NewTracker(a.resolver.Canonical)
	for _, hand := range hands {
		tracker.Observe(hand)
	}

	report.WriteStats(os.Stdout, tracker.Players())
	return nil
}
