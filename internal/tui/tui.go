package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/questlog/internal/db"
	"github.com/balkashynov/questlog/internal/models"
)

// RunWatchTUI starts the live session watch view
func RunWatchTUI(store *db.Store, session *models.Session) error {
	model := NewWatchModel(store, session)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
