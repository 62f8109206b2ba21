package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/questlog/internal/db"
	"github.com/balkashynov/questlog/internal/models"
	"github.com/balkashynov/questlog/internal/parser"
)

var logCmd = &cobra.Command{
	Use:   "log [description]",
	Short: "Log an event in the active session",
	Long: `Log an event in the active session. Starting a new event closes the
previous open one, so the log always reflects what is happening right now.

Smart parsing syntax:
  #tag    - Event tag (combat, roleplay, exploration, ...)

Examples:
  questlog log "Fought the dragon #combat"
  questlog log "Long rest" --tag downtime`,
	Args: cobra.MinimumNArgs(1),
	Run: withStore(func(store *db.Store, cmd *cobra.Command, args []string) {
		session, err := store.ActiveSession()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if session == nil {
			fmt.Println("No active session. Use 'questlog use <session>' first.")
			return
		}

		parsed := parser.ParseEntry(strings.Join(args, " "))
		if len(parsed.Errors) > 0 {
			fmt.Printf("⚠️  Found issues with parsing: %s\n", strings.Join(parsed.Errors, ", "))
			return
		}

		tagInput := parsed.Tag
		if flagTag, _ := cmd.Flags().GetString("tag"); flagTag != "" {
			tagInput = flagTag
		}

		tag := models.TagNote
		if tagInput != "" {
			resolved, ok := models.ParseEventTag(tagInput)
			if !ok {
				fmt.Printf("Error: unknown tag '%s'. Use: %s\n", tagInput, tagChoices(session.Type))
				return
			}
			tag = resolved
		}

		event, err := store.CreateEvent(session.ID, tag, parsed.Description)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("📝 Logged [%s] %s\n", event.Tag, event.Description)
		fmt.Printf("  Started at: %s\n", event.Timestamp.Format("15:04:05"))
	}),
}

var endCmd = &cobra.Command{
	Use:   "end",
	Short: "Close the open event in the active session",
	Run: withStore(func(store *db.Store, cmd *cobra.Command, args []string) {
		session, err := store.ActiveSession()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if session == nil {
			fmt.Println("No active session. Use 'questlog use <session>' first.")
			return
		}

		open, err := store.OpenEvent(session.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if open == nil {
			fmt.Println("No open event in the active session.")
			return
		}

		closed, err := store.CloseEvent(open.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("⏹️  Closed [%s] %s\n", closed.Tag, closed.Description)
		fmt.Printf("  Duration: %s\n", closed.DurationLabel())
	}),
}

var eventsCmd = &cobra.Command{
	Use:   "events [session]",
	Short: "List events of a session (active session by default)",
	Args:  cobra.MaximumNArgs(1),
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

		events, err := store.Events(session.ID)
		if err != nil {
			fmt.Printf("Error fetching events: %v\n", err)
			return
		}

		if len(events) == 0 {
			fmt.Printf("No events in \"%s\" yet. Use 'questlog log \"what happened\"' to add one.\n", session.Name)
			return
		}

		fmt.Printf("Events in \"%s\" (%s):\n\n", session.Name, session.Type)
		fmt.Printf("%-10s %-13s %-10s %-10s %s\n", "ID", "TAG", "START", "DURATION", "DESCRIPTION")
		fmt.Println(strings.Repeat("-", 80))

		for _, event := range events {
			description := event.Description
			if len(description) > 34 {
				description = description[:31] + "..."
			}

			fmt.Printf("%-10s %-13s %-10s %-10s %s\n",
				shortID(event.ID),
				event.Tag,
				event.Timestamp.Format("15:04:05"),
				event.DurationLabel(),
				description)
		}
	}),
}

var clearCmd = &cobra.Command{
	Use:   "clear [session]",
	Short: "Delete all events of a session, keeping the session",
	Args:  cobra.MaximumNArgs(1),
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

		if err := store.DeleteSessionEvents(session.ID); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("🧹 Cleared all events of \"%s\"\n", session.Name)
	}),
}

// targetSession resolves an optional session argument, falling back to
// the active session
func targetSession(store *db.Store, args []string) (*models.Session, error) {
	if len(args) > 0 {
		return resolveSession(store, args[0])
	}
	return store.ActiveSession()
}

func tagChoices(t models.SessionType) string {
	var names []string
	for _, tag := range models.TagsForType(t) {
		names = append(names, strings.ToLower(string(tag)))
	}
	return strings.Join(names, ", ")
}

func init() {
	logCmd.Flags().StringP("tag", "t", "", "Event tag (overrides #tag in the description)")
}
