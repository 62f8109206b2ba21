package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/questlog/internal/db"
	"github.com/balkashynov/questlog/internal/models"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active session and its open event",
	Run: withStore(func(store *db.Store, cmd *cobra.Command, args []string) {
		session, err := store.ActiveSession()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if session == nil {
			fmt.Println("No active session")
			return
		}

		fmt.Printf("🎲 Active session: \"%s\" (%s)\n", session.Name, session.Type)

		open, err := store.OpenEvent(session.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if open == nil {
			fmt.Println("No open event")
			return
		}

		elapsed := time.Since(open.Timestamp)
		fmt.Printf("⏱️  Open event: [%s] %s\n", open.Tag, open.Description)
		fmt.Printf("Started at: %s\n", open.Timestamp.Format("15:04:05"))
		fmt.Printf("Elapsed time: %s\n", models.FormatDuration(elapsed))
	}),
}
