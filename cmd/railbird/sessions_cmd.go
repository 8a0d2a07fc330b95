package main

import (
	"os"

	"github.com/railbird/railbird/internal/ingest"
	"github.com/railbird/railbird/internal/report"
	"github.com/railbird/railbird/internal/session"
)

// SessionsCmd aggregates ledger exports into per-player records.
type SessionsCmd struct {
	Paths []string `arg:"" optional:"" help:"Ledger CSV files (default: discover in data dir)"`
}

func (c *SessionsCmd) Run(g *Globals) error {
	a, err := setup(g)
	if err != nil {
		return err
	}
	paths, err := a.ledgerPaths(c.Paths)
	if err != nil {
		return err
	}

	files := make([][]ingest.LedgerRow, 0, len(paths))
	for _, path := range paths {
		rows, err := ingest.LoadLedger(path)
		if err != nil {
			return err
		}
		files = append(files, rows)
	}

	sessions := session.Build(files, a.resolver.Canonical)
	a.logger.Info("aggregated ledgers", "files", len(files), "sessions", len(sessions))

	report.WriteSessions(os.Stdout, session.Summarize(sessions))
	return nil
}
