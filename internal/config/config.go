// Package config handles application configuration management.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Base directory for all Tally data.
	BaseDir string

	// Timezone for calendar-day boundaries. Empty means system local.
	Timezone string

	// RetentionDays is how long raw minute counters and sample payloads
	// are kept before pruning. 0 disables pruning.
	RetentionDays int

	// IngestRatePerSec throttles capture-feed replay.
	IngestRatePerSec int

	// Debug enables verbose database logging.
	Debug bool
}

// Load reads configuration from a .env file (if present) and environment
// variables, then ensures the data directories exist.
func Load() (*Config, error) {
	// Missing .env is fine; env vars still apply.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if dir := os.Getenv("TALLY_HOME"); dir != "" {
		cfg.BaseDir = dir
	}
	if tz := os.Getenv("TALLY_TZ"); tz != "" {
		cfg.Timezone = tz
	}
	if v := os.Getenv("TALLY_RETENTION_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days < 0 {
			return nil, fmt.Errorf("invalid TALLY_RETENTION_DAYS %q", v)
		}
		cfg.RetentionDays = days
	}
	if v := os.Getenv("TALLY_INGEST_RATE"); v != "" {
		rate, err := strconv.Atoi(v)
		if err != nil || rate <= 0 {
			return nil, fmt.Errorf("invalid TALLY_INGEST_RATE %q", v)
		}
		cfg.IngestRatePerSec = rate
	}
	if v := os.Getenv("TALLY_DEBUG"); v == "1" || v == "true" {
		cfg.Debug = true
	}

	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// ensureDirectories creates required directories if they don't exist.
func ensureDirectories(cfg *Config) error {
	paths := GetPaths(cfg)
	for _, dir := range []string{cfg.BaseDir, paths.LogDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
