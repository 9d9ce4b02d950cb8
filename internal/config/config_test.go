package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TALLY_HOME", t.TempDir())
	t.Setenv("TALLY_TZ", "")
	t.Setenv("TALLY_RETENTION_DAYS", "")
	t.Setenv("TALLY_INGEST_RATE", "")
	t.Setenv("TALLY_DEBUG", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 90, cfg.RetentionDays)
	assert.Equal(t, 200, cfg.IngestRatePerSec)
	assert.False(t, cfg.Debug)
	assert.Empty(t, cfg.Timezone)
}

func TestLoad_EnvOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("TALLY_HOME", home)
	t.Setenv("TALLY_TZ", "America/New_York")
	t.Setenv("TALLY_RETENTION_DAYS", "30")
	t.Setenv("TALLY_INGEST_RATE", "50")
	t.Setenv("TALLY_DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, home, cfg.BaseDir)
	assert.Equal(t, "America/New_York", cfg.Timezone)
	assert.Equal(t, 30, cfg.RetentionDays)
	assert.Equal(t, 50, cfg.IngestRatePerSec)
	assert.True(t, cfg.Debug)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric retention", "TALLY_RETENTION_DAYS", "forever"},
		{"negative retention", "TALLY_RETENTION_DAYS", "-1"},
		{"non-numeric rate", "TALLY_INGEST_RATE", "fast"},
		{"zero rate", "TALLY_INGEST_RATE", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TALLY_HOME", t.TempDir())
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestLoad_CreatesDirectories(t *testing.T) {
	home := filepath.Join(t.TempDir(), "nested", "tally")
	t.Setenv("TALLY_HOME", home)

	cfg, err := Load()
	require.NoError(t, err)

	paths := GetPaths(cfg)
	assert.DirExists(t, cfg.BaseDir)
	assert.DirExists(t, paths.LogDir)
	assert.Equal(t, filepath.Join(home, "tally.db"), paths.Database)
}

func TestConfig_Location(t *testing.T) {
	cfg := &Config{Timezone: "UTC"}
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	cfg.Timezone = ""
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	cfg.Timezone = "Mars/Olympus"
	_, err = cfg.Location()
	require.Error(t, err)
}
