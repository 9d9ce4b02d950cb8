package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Control focus sessions",
}

var sessionStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a focus session",
	Long: `Start a focus session.

If a session is already open it is returned unchanged; starting twice never
creates a second session.`,
	RunE: runSessionStart,
}

var sessionEndCmd = &cobra.Command{
	Use:   "end",
	Short: "End the open focus session",
	RunE:  runSessionEnd,
}

var sessionStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the open focus session, if any",
	RunE:  runSessionStatus,
}

var sessionInterruptCmd = &cobra.Command{
	Use:   "interrupt",
	Short: "Record an interruption on the open session",
	RunE:  runSessionInterrupt,
}

func init() {
	sessionCmd.AddCommand(sessionStartCmd)
	sessionCmd.AddCommand(sessionEndCmd)
	sessionCmd.AddCommand(sessionStatusCmd)
	sessionCmd.AddCommand(sessionInterruptCmd)
}

func runSessionStart(cmd *cobra.Command, args []string) error {
	_, database, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	session, err := database.StartSession(nil)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	fmt.Printf("Focus session open since %s (id %s)\n",
		session.StartAt.Format("15:04:05"), session.ID)
	return nil
}

func runSessionEnd(cmd *cobra.Command, args []string) error {
	_, database, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	open, err := database.OpenSession()
	if err != nil {
		return err
	}
	if open == nil {
		fmt.Println("No open focus session.")
		return nil
	}

	session, err := database.EndSession(open.ID)
	if err != nil {
		return fmt.Errorf("end session: %w", err)
	}

	fmt.Printf("Session closed after %s — %d keystrokes, %d clicks, %d interruptions\n",
		session.Duration().Round(time.Second),
		session.Keystrokes, session.Clicks, session.Interruptions)
	if session.IsDeepWork() {
		fmt.Println("Deep work ✓")
	}
	return nil
}

func runSessionStatus(cmd *cobra.Command, args []string) error {
	_, database, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	open, err := database.OpenSession()
	if err != nil {
		return err
	}
	if open == nil {
		fmt.Println("No open focus session.")
		return nil
	}

	fmt.Printf("Open since %s (%s elapsed), %d interruptions\n",
		open.StartAt.Format("15:04:05"),
		time.Since(open.StartAt).Round(time.Second),
		open.Interruptions)
	return nil
}

func runSessionInterrupt(cmd *cobra.Command, args []string) error {
	_, database, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	open, err := database.OpenSession()
	if err != nil {
		return err
	}
	if open == nil {
		fmt.Println("No open focus session.")
		return nil
	}

	if err := database.IncrementInterruptions(open.ID); err != nil {
		return err
	}
	fmt.Println("Interruption recorded.")
	return nil
}
