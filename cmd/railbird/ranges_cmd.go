package main

import (
	"fmt"
	"os"

	"github.com/railbird/railbird/internal/report"
	"github.com/railbird/railbird/internal/stats"
)

// RangesCmd renders the 13x13 showdown range grid for one player.
type RangesCmd struct {
	Player string   `arg:"" help:"Player to show (canonical name, nickname, or raw log name)"`
	Paths  []string `arg:"" optional:"" help:"Log CSV files (default: discover in data dir)"`
}

func (c *RangesCmd) Run(g *Globals) error {
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

	matrix := tracker.Range(c.Player)
	if matrix == nil {
		return fmt.Errorf("no showdown hands seen for %q", c.Player)
	}
	report.WriteRangeHeatmap(os.Stdout, matrix)
	return nil
}
