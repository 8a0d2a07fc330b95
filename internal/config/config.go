// Package config loads analyzer configuration from HCL.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/railbird/railbird/internal/identity"
)

// Config is the complete analyzer configuration.
type Config struct {
	Analyzer AnalyzerSettings `hcl:"analyzer,block"`
	Players  []PlayerConfig   `hcl:"player,block"`
}

// AnalyzerSettings controls ingestion and evaluation.
type AnalyzerSettings struct {
	DataDir          string `hcl:"data_dir,optional"`
	LogLevel         string `hcl:"log_level,optional"`
	EnumerationLimit int64  `hcl:"enumeration_limit,optional"`
	Workers          int    `hcl:"workers,optional"`
}

// PlayerConfig folds one person's nicknames and client IDs into a
// canonical name.
type PlayerConfig struct {
	Name  string   `hcl:"name,label"`
	IDs   []string `hcl:"ids,optional"`
	Names []string `hcl:"names,optional"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Analyzer: AnalyzerSettings{
			DataDir:          "data",
			LogLevel:         "info",
			EnumerationLimit: 25_000_000,
			Workers:          0, // one per CPU
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults rather than an error.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if config.Analyzer.DataDir == "" {
		config.Analyzer.DataDir = "data"
	}
	if config.Analyzer.LogLevel == "" {
		config.Analyzer.LogLevel = "info"
	}
	if config.Analyzer.EnumerationLimit == 0 {
		config.Analyzer.EnumerationLimit = 25_000_000
	}

	return &config, nil
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	if c.Analyzer.EnumerationLimit < 0 {
		return fmt.Errorf("enumeration_limit must be positive")
	}
	if c.Analyzer.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}

	seen := make(map[string]string)
	for _, player := range c.Players {
		if player.Name == "" {
			return fmt.Errorf("player block with empty name")
		}
		for _, id := range player.IDs {
			if owner, ok := seen[id]; ok && owner != player.Name {
				return fmt.Errorf("player %s: id %q already claimed by %s", player.Name, id, owner)
			}
			seen[id] = player.Name
		}
	}
	return nil
}

// Resolver builds the identity resolver from the player blocks.
func (c *Config) Resolver() *identity.Resolver {
	players := make(map[string]identity.Aliases, len(c.Players))
	for _, player := range c.Players {
		players[player.Name] = identity.Aliases{
			IDs:   player.IDs,
			Names: player.Names,
		}
	}
	return identity.NewResolver(players)
}
