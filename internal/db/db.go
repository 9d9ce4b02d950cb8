// Package db provides the GORM-based embedded store for Tally.
// It uses the pure-Go SQLite driver with a single open connection, which
// serializes writers while reads of committed state stay cheap.
package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/quiet-orbit/tally/internal/models"
)

// DB wraps the GORM database connection with Tally-specific operations.
type DB struct {
	*gorm.DB
	path string
}

// Config holds database configuration options.
type Config struct {
	Path        string
	Debug       bool
	MaxIdleConn int
	MaxOpenConn int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(path string) Config {
	return Config{
		Path:        path,
		Debug:       false,
		MaxIdleConn: 1,
		MaxOpenConn: 1,
	}
}

// New creates a new database connection and runs migrations.
func New(cfg Config) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}

	// DELETE journal mode: WAL has visibility issues with the pure-Go
	// SQLite driver, and a single local writer doesn't need it.
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(DELETE)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)", cfg.Path)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logLevel),
		SkipDefaultTransaction: true, // Better performance for read operations
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConn)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConn)
	sqlDB.SetConnMaxLifetime(time.Hour)

	wrapped := &DB{DB: db, path: cfg.Path}

	if err := wrapped.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return wrapped, nil
}

// migrate runs GORM auto-migrations for all models.
func (db *DB) migrate() error {
	return db.AutoMigrate(
		&models.App{},
		&models.MinuteCounter{},
		&models.FocusSession{},
		&models.DailyRollup{},
		&models.EarnedAchievement{},
		&models.SamplePayload{},
	)
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Close closes the database connection.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction executes a function within a database transaction.
// The callback receives a *DB wrapper that uses the transaction.
// If the callback returns an error, the transaction is rolled back.
// If the callback returns nil, the transaction is committed.
func (d *DB) Transaction(fc func(tx *DB) error) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		wrappedTx := &DB{DB: tx, path: d.path}
		return fc(wrappedTx)
	})
}

// Stats summarizes the stored tables for diagnostics.
type Stats struct {
	TotalApps        int64     `json:"total_apps"`
	TotalCounterRows int64     `json:"total_counter_rows"`
	TotalSessions    int64     `json:"total_sessions"`
	TotalRollups     int64     `json:"total_rollups"`
	EarnedCount      int64     `json:"earned_count"`
	DBSizeBytes      int64     `json:"db_size_bytes"`
	LastUpdated      time.Time `json:"last_updated"`
}

// GetStats returns aggregate statistics about the database.
func (db *DB) GetStats() (*Stats, error) {
	var stats Stats

	if err := db.Model(&models.App{}).Count(&stats.TotalApps).Error; err != nil {
		return nil, fmt.Errorf("count apps: %w", err)
	}
	if err := db.Model(&models.MinuteCounter{}).Count(&stats.TotalCounterRows).Error; err != nil {
		return nil, fmt.Errorf("count counters: %w", err)
	}
	if err := db.Model(&models.FocusSession{}).Count(&stats.TotalSessions).Error; err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}
	if err := db.Model(&models.DailyRollup{}).Count(&stats.TotalRollups).Error; err != nil {
		return nil, fmt.Errorf("count rollups: %w", err)
	}
	if err := db.Model(&models.EarnedAchievement{}).Count(&stats.EarnedCount).Error; err != nil {
		return nil, fmt.Errorf("count earned achievements: %w", err)
	}

	if info, err := os.Stat(db.path); err == nil {
		stats.DBSizeBytes = info.Size()
	}
	stats.LastUpdated = time.Now()

	return &stats, nil
}
