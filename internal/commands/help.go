package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for questlog",
	Long:  `Display detailed help for all questlog commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		showCustomHelp()
	},
}

func showCustomHelp() {
	fmt.Print(`
 ██████╗ ██╗   ██╗███████╗███████╗████████╗██╗      ██████╗  ██████╗
██╔═══██╗██║   ██║██╔════╝██╔════╝╚══██╔══╝██║     ██╔═══██╗██╔════╝
██║   ██║██║   ██║█████╗  ███████╗   ██║   ██║     ██║   ██║██║  ███╗
██║▄▄ ██║██║   ██║██╔══╝  ╚════██║   ██║   ██║     ██║   ██║██║   ██║
╚██████╔╝╚██████╔╝███████╗███████║   ██║   ███████╗╚██████╔╝╚██████╔╝
 ╚══▀▀═╝  ╚═════╝ ╚══════╝╚══════╝   ╚═╝   ╚══════╝ ╚═════╝  ╚═════╝

questlog - Tabletop Session Event Logger

COMMANDS:

  new <name>              Create a session and make it active
    -t, --type            Session type: rpg|boardgame|cardgame|other

    Example:
      questlog new "Dragon Heist" --type rpg

  ls                      List sessions (newest first)
  use <session>           Select the active session
  rename <session> <name> Rename a session
  rm <session>            Delete a session and all its events

  log <description>       Log an event in the active session
    -t, --tag             Event tag

    Starting a new event closes the previous open one using the new
    event's start time as the boundary.

    Smart syntax:
      #tag          Tag the event inline

    Example:
      questlog log "Fought the dragon #combat"

  end                     Close the open event in the active session
  events [session]        List a session's events (newest first)
  clear [session]         Delete a session's events, keep the session

  status                  Show the active session and its open event
  watch [session]         Live-updating event log view
    ↑/↓           Scroll events
    esc/q         Quit

  version                 Show version information
  help                    Show this help

Sessions can be referred to by ID, ID prefix, or exact name.

`)
}
