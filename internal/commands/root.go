package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/balkashynov/questlog/internal/db"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "questlog",
	Short: "A CLI logger for tabletop game sessions",
	Long: `questlog records timestamped, tagged events grouped into named game
sessions. Start a session, log what happens at the table, and questlog
tracks how long each part took.`,
}

// withStore wraps a command function with store open/close. A failed open
// (including a failed migration) is fatal and reported to the user.
func withStore(fn func(*db.Store, *cobra.Command, []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		store, err := db.Open(db.Options{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		fn(store, cmd, args)
	}
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("questlog %s (commit %s, built %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(useCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(endCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
