package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quiet-orbit/tally/internal/config"
)

var pruneDays int

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete raw counters and samples past the retention window",
	Long: `Delete raw minute counters and sample payloads older than the
retention window. Daily rollups and sessions are kept; rollups over pruned
ranges simply show reduced totals when recomputed.`,
	RunE: runPrune,
}

func init() {
	pruneCmd.Flags().IntVar(&pruneDays, "days", 0,
		"retention window in days (default from TALLY_RETENTION_DAYS)")
}

func runPrune(cmd *cobra.Command, args []string) error {
	_, database, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	days := pruneDays
	if days == 0 {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		days = cfg.RetentionDays
	}
	if days <= 0 {
		fmt.Println("Retention pruning disabled.")
		return nil
	}

	cutoff := time.Now().AddDate(0, 0, -days).Unix()

	counters, err := database.PruneCountersBefore(cutoff)
	if err != nil {
		return err
	}
	samples, err := database.PruneSamplesBefore(cutoff)
	if err != nil {
		return err
	}

	fmt.Printf("Pruned %d counter rows and %d sample payloads older than %d days\n",
		counters, samples, days)
	return nil
}
