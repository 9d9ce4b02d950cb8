package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quiet-orbit/tally/internal/models"
)

var reportCmd = &cobra.Command{
	Use:   "report [date]",
	Short: "Show the daily summary for a date",
	Long: `Show the daily summary for a date (YYYY-MM-DD, default today).

The rollup is recomputed from the raw counters and focus sessions before
being shown, so the output always reflects current data.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	eng, _, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	date := time.Now().In(eng.Location()).Format(models.DateFormat)
	if len(args) == 1 {
		date = args[0]
	}

	rollup, err := eng.Aggregate(date)
	if err != nil {
		return fmt.Errorf("aggregate %s: %w", date, err)
	}

	fmt.Printf("DAILY REPORT — %s\n", rollup.Date)
	fmt.Println("──────────────────────────────────────────────────")
	fmt.Printf("  Active time:     %s\n", formatSeconds(rollup.TotalActiveSeconds))
	fmt.Printf("  Focus time:      %s\n", formatSeconds(rollup.TotalFocusSeconds))
	fmt.Printf("  Keystrokes:      %d\n", rollup.TotalKeystrokes)
	fmt.Printf("  Clicks:          %d\n", rollup.TotalClicks)
	fmt.Printf("  Scroll distance: %d\n", rollup.TotalScroll)
	fmt.Printf("  Focus score:     %d/100\n", rollup.FocusScore)
	fmt.Printf("  Productivity:    %d/100\n", rollup.ProductivityScore)

	if rollup.FirstActivityAt != nil {
		fmt.Printf("  First activity:  %s\n", rollup.FirstActivityAt.Format("15:04"))
		fmt.Printf("  Last activity:   %s\n", rollup.LastActivityAt.Format("15:04"))
	}

	var topApps []models.TopAppEntry
	if err := json.Unmarshal([]byte(rollup.TopApps), &topApps); err == nil && len(topApps) > 0 {
		fmt.Println("\n  Top apps:")
		for i, app := range topApps {
			name := app.Name
			if name == "" {
				name = fmt.Sprintf("app #%d", app.AppID)
			}
			fmt.Printf("    %d. %-30s %s\n", i+1, name, formatSeconds(app.ActiveSeconds))
		}
	}

	if rollup.TotalActiveSeconds == 0 {
		fmt.Println("\nNo activity recorded for this date.")
	}

	return nil
}

// formatSeconds renders a duration in h/m/s form.
func formatSeconds(secs int64) string {
	d := time.Duration(secs) * time.Second
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
