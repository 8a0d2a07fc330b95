package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "railbird.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)
	require.Equal(t, "data", cfg.Analyzer.DataDir)
	require.Equal(t, "info", cfg.Analyzer.LogLevel)
	require.Equal(t, int64(25_000_000), cfg.Analyzer.EnumerationLimit)
	require.Empty(t, cfg.Players)
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
analyzer {
  data_dir          = "/srv/poker"
  log_level         = "debug"
  enumeration_limit = 1000000
  workers           = 8
}

player "dave" {
  ids   = ["id1", "id2"]
  names = ["DangerDave"]
}

player "erin" {
  ids = ["id9"]
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, "/srv/poker", cfg.Analyzer.DataDir)
	require.Equal(t, "debug", cfg.Analyzer.LogLevel)
	require.Equal(t, int64(1_000_000), cfg.Analyzer.EnumerationLimit)
	require.Equal(t, 8, cfg.Analyzer.Workers)
	require.Len(t, cfg.Players, 2)

	resolver := cfg.Resolver()
	require.Equal(t, "dave", resolver.Canonical("DangerDave @ id1"))
	require.Equal(t, "dave", resolver.Canonical("Whoever @ id2"))
	require.Equal(t, "erin", resolver.Canonical("anyone @ id9"))
	require.Equal(t, "Stranger", resolver.Canonical("Stranger @ zzz"))
}

func TestLoadPartialConfigFillsDefaults(t *testing.T) {
	path := writeConfig(t, `
analyzer {
  data_dir = "/srv/poker"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/srv/poker", cfg.Analyzer.DataDir)
	require.Equal(t, "info", cfg.Analyzer.LogLevel)
	require.Equal(t, int64(25_000_000), cfg.Analyzer.EnumerationLimit)
}

func TestLoadMalformed(t *testing.T) {
	path := writeConfig(t, `analyzer { data_dir = `)
	_, err := Load(path)
	require.Error(t, err)
}

func TestValidateDuplicateIDs(t *testing.T) {
	path := writeConfig(t, `
analyzer {}

player "dave" {
  ids = ["id1"]
}

player "erin" {
  ids = ["id1"]
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Error(t, cfg.Validate())
}
