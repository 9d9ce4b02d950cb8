// Tally - Local Activity Tracking
//
// An offline-first tool that turns raw per-minute usage counters into daily
// rollups, focus-session metrics, and achievement unlocks. All data lives in
// a local SQLite database.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/quiet-orbit/tally/internal/cli"
	"github.com/quiet-orbit/tally/internal/config"
	"github.com/quiet-orbit/tally/internal/log"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}

	paths := config.GetPaths(cfg)
	if err := log.Init(paths.LogDir); err != nil {
		os.Exit(1)
	}
	defer func() { _ = log.Close() }()

	if err := cli.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
