// Package cli provides the command-line interface for Tally.
package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/quiet-orbit/tally/internal/config"
	"github.com/quiet-orbit/tally/internal/db"
	"github.com/quiet-orbit/tally/internal/engine"
	"github.com/quiet-orbit/tally/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "tally",
	Short: "Local activity tracking and productivity statistics",
	Long: `Local activity tracking and productivity statistics.

Tally aggregates raw per-minute usage counters captured on this machine into
daily rollups, focus-session metrics, and achievement unlocks. All data stays
in a local SQLite database; nothing leaves the machine.

Run 'tally report' to see today's summary.`,
	SilenceUsage: true,
	RunE:         runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(appsCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(statsCmd)
}

// Execute runs the CLI with fang enhancements.
func Execute(ctx context.Context) error {
	return fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(version.Short()),
		fang.WithCommit(version.Commit),
	)
}

// openEngine loads configuration, opens the store, and builds an engine.
// The returned cleanup closes the database.
func openEngine() (*engine.Engine, *db.DB, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, nil, err
	}

	paths := config.GetPaths(cfg)
	dbCfg := db.DefaultConfig(paths.Database)
	dbCfg.Debug = cfg.Debug
	database, err := db.New(dbCfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("initialize database: %w", err)
	}

	cleanup := func() { _ = database.Close() }
	return engine.New(database, loc), database, cleanup, nil
}
