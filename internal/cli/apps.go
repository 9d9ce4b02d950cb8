package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/quiet-orbit/tally/internal/models"
)

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List tracked applications",
	RunE:  runApps,
}

var appsCategorizeCmd = &cobra.Command{
	Use:   "categorize <app-id> <category>",
	Short: "Override an application's category",
	Long: `Override an application's category and distraction flag.

Categories: development, browser, communication, productivity, design,
media, social, games, utilities, other. Use --distraction to count the
app's time against the productivity score.`,
	Args: cobra.ExactArgs(2),
	RunE: runAppsCategorize,
}

var categorizeDistraction bool

func init() {
	appsCategorizeCmd.Flags().BoolVar(&categorizeDistraction, "distraction", false,
		"flag the app as a distraction")
	appsCmd.AddCommand(appsCategorizeCmd)
}

func runApps(cmd *cobra.Command, args []string) error {
	_, database, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	apps, err := database.ListApps()
	if err != nil {
		return err
	}

	if len(apps) == 0 {
		fmt.Println("No applications tracked yet.")
		return nil
	}

	fmt.Printf("APPLICATIONS (%d)\n", len(apps))
	fmt.Println("──────────────────────────────────────────────────")
	for _, app := range apps {
		flag := ""
		if app.IsDistraction {
			flag = " [distraction]"
		}
		fmt.Printf("  %4d  %-30s %s%s\n", app.ID, app.Name, app.Category, flag)
		fmt.Printf("        %s\n", app.BundleID)
	}
	return nil
}

func runAppsCategorize(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid app id %q", args[0])
	}
	category := models.AppCategory(args[1])

	_, database, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := database.SetAppCategory(uint(id), category, categorizeDistraction); err != nil {
		return err
	}
	fmt.Printf("App %d categorized as %s\n", id, category)
	return nil
}
