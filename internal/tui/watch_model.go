package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/questlog/internal/db"
	"github.com/balkashynov/questlog/internal/models"
)

// WatchModel is a live view over one session's event log. It holds the
// latest collection pushed by the store's watch channel and never
// re-queries on its own.
type WatchModel struct {
	width  int
	height int

	session *models.Session
	events  []models.Event

	updates <-chan []models.Event
	cancel  func()

	spinner spinner.Model
	scroll  int
	exiting bool
}

// eventsMsg carries a fresh event collection from the watch channel
type eventsMsg []models.Event

// clockTickMsg re-renders the open event's elapsed time every second
type clockTickMsg struct{}

// NewWatchModel creates a live watch model subscribed to the session's events
func NewWatchModel(store *db.Store, session *models.Session) WatchModel {
	updates, cancel := store.WatchEvents(session.ID)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

	return WatchModel{
		session: session,
		updates: updates,
		cancel:  cancel,
		spinner: sp,
	}
}

// Init starts the spinner, the clock, and the watch loop
func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		waitForEvents(m.updates),
		clockTick(),
	)
}

// waitForEvents blocks on the watch channel and republishes it as a message
func waitForEvents(ch <-chan []models.Event) tea.Cmd {
	return func() tea.Msg {
		events, ok := <-ch
		if !ok {
			return nil
		}
		return eventsMsg(events)
	}
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg{}
	})
}

// Update handles messages
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventsMsg:
		m.events = msg
		if m.scroll > maxScroll(len(m.events), m.visibleRows()) {
			m.scroll = maxScroll(len(m.events), m.visibleRows())
		}
		return m, waitForEvents(m.updates)

	case clockTickMsg:
		if m.exiting {
			return m, nil
		}
		return m, clockTick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.scroll > 0 {
				m.scroll--
			}
			return m, nil
		case "down", "j":
			if m.scroll < maxScroll(len(m.events), m.visibleRows()) {
				m.scroll++
			}
			return m, nil
		case "ctrl+c", "esc", "q":
			m.exiting = true
			m.cancel()
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m WatchModel) visibleRows() int {
	// Header, open event line, blank lines, help footer
	rows := m.height - 7
	if rows < 1 {
		rows = 10
	}
	return rows
}

func maxScroll(total, visible int) int {
	if total <= visible {
		return 0
	}
	return total - visible
}

// View renders the live event log
func (m WatchModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)
	secondaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText))
	openStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning))
	closedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSuccess))
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText))

	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("🎲 %s", m.session.Name)))
	b.WriteString(secondaryStyle.Render(fmt.Sprintf("  (%s)", m.session.Type)))
	b.WriteString("\n\n")

	open := openEvent(m.events)
	if open != nil {
		elapsed := models.FormatDuration(time.Since(open.Timestamp))
		b.WriteString(fmt.Sprintf("%s %s  %s\n\n",
			m.spinner.View(),
			openStyle.Render(fmt.Sprintf("[%s] %s", open.Tag, open.Description)),
			secondaryStyle.Render(elapsed)))
	} else {
		b.WriteString(secondaryStyle.Render("No open event") + "\n\n")
	}

	if len(m.events) == 0 {
		b.WriteString(secondaryStyle.Render("No events yet. Log one with 'questlog log'.") + "\n")
	}

	end := m.scroll + m.visibleRows()
	if end > len(m.events) {
		end = len(m.events)
	}
	for _, event := range m.events[m.scroll:end] {
		label := event.DurationLabel()
		style := closedStyle
		if event.Open() {
			style = openStyle
		}
		b.WriteString(fmt.Sprintf("%s  %-13s %-10s %s\n",
			secondaryStyle.Render(event.Timestamp.Format("15:04:05")),
			style.Render(string(event.Tag)),
			label,
			event.Description))
	}

	b.WriteString("\n" + helpStyle.Render("↑/↓ scroll • q quit"))

	return b.String()
}

func openEvent(events []models.Event) *models.Event {
	for i := range events {
		if events[i].Open() {
			return &events[i]
		}
	}
	return nil
}
