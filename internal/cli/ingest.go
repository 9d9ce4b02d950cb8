package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/quiet-orbit/tally/internal/config"
	"github.com/quiet-orbit/tally/internal/log"
	"github.com/quiet-orbit/tally/internal/models"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file.jsonl>",
	Short: "Replay a capture feed into the counter store",
	Long: `Replay a capture feed into the counter store.

Each line is one JSON observation:

  {"ts":"2026-09-01T10:00:00Z","bundle_id":"com.apple.dt.Xcode",
   "name":"Xcode","keystrokes":42,"clicks":3,"active_seconds":60}

Merges are additive and idempotent per minute/app pair, so replaying
overlapping feeds never loses or double-books increments within a line.
Writes are throttled to TALLY_INGEST_RATE lines per second.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

// captureLine mirrors the capture source's observation tuple.
type captureLine struct {
	TS       time.Time `json:"ts"`
	BundleID string    `json:"bundle_id"`
	Name     string    `json:"name"`
	models.CounterDeltas
}

func runIngest(cmd *cobra.Command, args []string) error {
	eng, _, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open feed: %w", err)
	}
	defer func() { _ = file.Close() }()

	limiter := rate.NewLimiter(rate.Limit(cfg.IngestRatePerSec), cfg.IngestRatePerSec)

	var merged, skipped int
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var obs captureLine
		if err := json.Unmarshal(line, &obs); err != nil {
			skipped++
			log.Errorf("skipping malformed feed line: %v", err)
			continue
		}
		if obs.BundleID == "" {
			skipped++
			log.Errorf("skipping feed line without bundle id")
			continue
		}

		if err := limiter.Wait(cmd.Context()); err != nil {
			return err
		}
		if err := eng.RecordActivity(obs.TS, obs.BundleID, obs.Name, obs.CounterDeltas); err != nil {
			return fmt.Errorf("merge line %d: %w", merged+skipped+1, err)
		}
		merged++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read feed: %w", err)
	}

	fmt.Printf("Merged %d observations", merged)
	if skipped > 0 {
		fmt.Printf(" (%d malformed lines skipped)", skipped)
	}
	fmt.Println()
	return nil
}
