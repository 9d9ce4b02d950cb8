package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Paths contains commonly used file paths.
type Paths struct {
	Database string // Main SQLite database
	LogDir   string // Log file directory
	Env      string // Optional .env file
}

// GetPaths returns all commonly used paths based on config.
func GetPaths(cfg *Config) Paths {
	return Paths{
		Database: filepath.Join(cfg.BaseDir, "tally.db"),
		LogDir:   filepath.Join(cfg.BaseDir, "logs"),
		Env:      filepath.Join(cfg.BaseDir, ".env"),
	}
}

// DefaultBaseDir returns the default data directory, following the XDG
// base-directory spec.
func DefaultBaseDir() string {
	return filepath.Join(xdg.DataHome, "tally")
}
