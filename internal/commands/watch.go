package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/questlog/internal/db"
	"github.com/balkashynov/questlog/internal/tui"
)

var watchCmd = &cobra.Command{
	Use:   "watch [session]",
	Short: "Watch a session's event log live",
	Long: `Watch a session's event log live. The view updates whenever an event
is logged, closed, or deleted, without polling or manual refresh.

Examples:
  questlog watch            # Watch the active session
  questlog watch "Dragon Heist"`,
	Args: cobra.MaximumNArgs(1),
	Run: withStore(func(store *db.Store, cmd *cobra.Command, args []string) {
		session, err := targetSession(store, args)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if session == nil {
			fmt.Println("No active session. Use 'questlog use <session>' first.")
			return
		}

		if err := tui.RunWatchTUI(store, session); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}),
}
