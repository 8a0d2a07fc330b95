package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/railbird/railbird/internal/config"
	"github.com/railbird/railbird/internal/handlog"
	"github.com/railbird/railbird/internal/identity"
	"github.com/railbird/railbird/internal/ingest"
)

// app is everything a subcommand needs before doing real work.
type app struct {
	cfg      *config.Config
	logger   *log.Logger
	resolver *identity.Resolver
}

func setup(g *Globals) (*app, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", g.Config, err)
	}

	level := log.InfoLevel
	if g.Debug {
		level = log.DebugLevel
	} else if parsed, err := log.ParseLevel(cfg.Analyzer.LogLevel); err == nil {
		level = parsed
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})

	return &app{
		cfg:      cfg,
		logger:   logger,
		resolver: cfg.Resolver(),
	}, nil
}

// logPaths resolves explicit paths, falling back to discovery in the
// configured data directory.
func (a *app) logPaths(explicit []string) ([]string, error) {
	if len(explicit) > 0 {
		return explicit, nil
	}
	logs, _, err := ingest.Discover(a.cfg.Analyzer.DataDir)
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, fmt.Errorf("no log files found in %s", a.cfg.Analyzer.DataDir)
	}
	return logs, nil
}

func (a *app) ledgerPaths(explicit []string) ([]string, error) {
	if len(explicit) > 0 {
		return explicit, nil
	}
	_, ledgers, err := ingest.Discover(a.cfg.Analyzer.DataDir)
	if err != nil {
		return nil, err
	}
	if len(ledgers) == 0 {
		return nil, fmt.Errorf("no ledger files found in %s", a.cfg.Analyzer.DataDir)
	}
	return ledgers, nil
}

// loadHands parses every log file into hands, reporting per-file skip
// counts as it goes.
func (a *app) loadHands(paths []string) ([]*handlog.Hand, error) {
	parser := handlog.NewParser(a.logger)
	var hands []*handlog.Hand
	for _, path := range paths {
		entries, err := ingest.LoadLog(path)
		if err != nil {
			return nil, err
		}
		parsed, skips := parser.ParseEntries(entries)
		a.logger.Debug("parsed log", "path", path, "hands", len(parsed), "skipped", skips.Count())
		if skips.Count() > 0 {
			a.logger.Warn("skipped malformed hands", "path", path, "count", skips.Count())
		}
		hands = append(hands, parsed...)
	}
	return hands, nil
}
