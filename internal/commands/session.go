package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/questlog/internal/db"
	"github.com/balkashynov/questlog/internal/models"
)

var newCmd = &cobra.Command{
	Use:   "new [session name]",
	Short: "Create a new game session",
	Long: `Create a new game session and make it the active one.

Examples:
  questlog new "Dragon Heist"
  questlog new "Catan night" --type boardgame`,
	Args: cobra.MinimumNArgs(1),
	Run: withStore(func(store *db.Store, cmd *cobra.Command, args []string) {
		name := strings.Join(args, " ")

		typeFlag, _ := cmd.Flags().GetString("type")
		sessionType := models.DefaultSessionType
		if typeFlag != "" {
			parsed, ok := models.ParseSessionType(typeFlag)
			if !ok {
				fmt.Printf("Error: unknown session type '%s'. Use: %s\n", typeFlag, sessionTypeChoices())
				return
			}
			sessionType = parsed
		}

		session, err := store.CreateSession(name, sessionType)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("🎲 Created session \"%s\" (%s)\n", session.Name, session.Type)
		fmt.Printf("  ID: %s\n", session.ID)

		if err := store.SetActiveSession(session.ID); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Println("  Now active.")
	}),
}

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List sessions",
	Run: withStore(func(store *db.Store, cmd *cobra.Command, args []string) {
		sessions, err := store.Sessions()
		if err != nil {
			fmt.Printf("Error fetching sessions: %v\n", err)
			return
		}

		if len(sessions) == 0 {
			fmt.Println("No sessions found. Use 'questlog new \"session name\"' to create your first session.")
			return
		}

		active, err := store.ActiveSession()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("%-10s %-40s %-12s %-16s %s\n", "ID", "NAME", "TYPE", "CREATED", "ACTIVE")
		fmt.Println(strings.Repeat("-", 86))

		for _, session := range sessions {
			name := session.Name
			if len(name) > 38 {
				name = name[:35] + "..."
			}

			activeMark := ""
			if active != nil && active.ID == session.ID {
				activeMark = "✓"
			}

			fmt.Printf("%-10s %-40s %-12s %-16s %s\n",
				shortID(session.ID),
				name,
				session.Type,
				session.CreatedAt.Format("2006-01-02 15:04"),
				activeMark)
		}
	}),
}

var useCmd = &cobra.Command{
	Use:   "use <session>",
	Short: "Select the active session",
	Args:  cobra.ExactArgs(1),
	Run: withStore(func(store *db.Store, cmd *cobra.Command, args []string) {
		session, err := resolveSession(store, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if err := store.SetActiveSession(session.ID); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("🎯 Active session: \"%s\" (%s)\n", session.Name, session.Type)
	}),
}

var renameCmd = &cobra.Command{
	Use:   "rename <session> <new name>",
	Short: "Rename a session",
	Args:  cobra.MinimumNArgs(2),
	Run: withStore(func(store *db.Store, cmd *cobra.Command, args []string) {
		session, err := resolveSession(store, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		renamed, err := store.RenameSession(session.ID, strings.Join(args[1:], " "))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("✏️  Renamed session to \"%s\"\n", renamed.Name)
	}),
}

var rmCmd = &cobra.Command{
	Use:   "rm <session>",
	Short: "Delete a session and all its events",
	Args:  cobra.ExactArgs(1),
	Run: withStore(func(store *db.Store, cmd *cobra.Command, args []string) {
		session, err := resolveSession(store, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if err := store.DeleteSession(session.ID); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("🗑️  Deleted session \"%s\" and its events\n", session.Name)
	}),
}

// resolveSession finds a session by ID, ID prefix, or exact name
func resolveSession(store *db.Store, arg string) (*models.Session, error) {
	sessions, err := store.Sessions()
	if err != nil {
		return nil, err
	}

	for i := range sessions {
		if sessions[i].ID == arg || sessions[i].Name == arg {
			return &sessions[i], nil
		}
	}
	for i := range sessions {
		if strings.HasPrefix(sessions[i].ID, arg) {
			return &sessions[i], nil
		}
	}
	return nil, &models.NotFoundError{Entity: "session", ID: arg}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func sessionTypeChoices() string {
	var names []string
	for _, t := range models.SessionTypes() {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}

func init() {
	newCmd.Flags().StringP("type", "t", "", "Session type: rpg, boardgame, cardgame, other")
}
