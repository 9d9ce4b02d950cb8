package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "Check and list achievements",
	Long: `Check achievement requirements against current data and list the
catalog with earned status. Newly satisfied achievements are unlocked and
reported once.`,
	RunE: runAchievements,
}

func runAchievements(cmd *cobra.Command, args []string) error {
	eng, _, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	newly, err := eng.CheckAchievements()
	if err != nil {
		return fmt.Errorf("check achievements: %w", err)
	}
	for _, def := range newly {
		fmt.Printf("🏆 Unlocked: %s — %s\n", def.Name, def.Description)
	}
	if len(newly) > 0 {
		fmt.Println()
	}

	statuses, err := eng.CatalogWithStatus()
	if err != nil {
		return err
	}

	fmt.Printf("ACHIEVEMENTS (%d)\n", len(statuses))
	fmt.Println("──────────────────────────────────────────────────")
	for _, status := range statuses {
		mark := " "
		when := ""
		if status.Earned {
			mark = "✓"
			when = " — earned " + status.EarnedAt.Format("2006-01-02")
		}
		fmt.Printf("  %s %-16s %s%s\n", mark, status.Name, status.Description, when)
	}
	return nil
}
