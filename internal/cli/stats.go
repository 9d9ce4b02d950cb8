package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	_, database, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	stats, err := database.GetStats()
	if err != nil {
		return err
	}

	fmt.Println("DATABASE")
	fmt.Println("──────────────────────────────────────────────────")
	fmt.Printf("  Path:         %s\n", database.Path())
	fmt.Printf("  Size:         %.1f KB\n", float64(stats.DBSizeBytes)/1024)
	fmt.Printf("  Apps:         %d\n", stats.TotalApps)
	fmt.Printf("  Counter rows: %d\n", stats.TotalCounterRows)
	fmt.Printf("  Sessions:     %d\n", stats.TotalSessions)
	fmt.Printf("  Rollups:      %d\n", stats.TotalRollups)
	fmt.Printf("  Achievements: %d earned\n", stats.EarnedCount)
	return nil
}
