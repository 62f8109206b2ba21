package models

import (
	"fmt"
	"time"
)

// EventTag categorizes a logged event
type EventTag string

const (
	TagCombat      EventTag = "Combat"
	TagRoleplay    EventTag = "Roleplay"
	TagExploration EventTag = "Exploration"
	TagDowntime    EventTag = "Downtime"
	TagSetup       EventTag = "Setup"
	TagTurn        EventTag = "Turn"
	TagScoring     EventTag = "Scoring"
	TagRound       EventTag = "Round"
	TagNote        EventTag = "Note"
)

// EventTags returns every known event tag
func EventTags() []EventTag {
	return []EventTag{
		TagCombat,
		TagRoleplay,
		TagExploration,
		TagDowntime,
		TagSetup,
		TagTurn,
		TagScoring,
		TagRound,
		TagNote,
	}
}

// Event represents a tagged, timestamped occurrence within a session.
// A nil EndTimestamp means the event is still open (in progress).
type Event struct {
	ID           string     `gorm:"primaryKey" json:"id"`
	SessionID    string     `gorm:"not null;index:idx_events_session_timestamp,priority:1" json:"session_id"`
	Tag          EventTag   `json:"tag"`
	Timestamp    time.Time  `gorm:"index:idx_events_session_timestamp,priority:2" json:"timestamp"`
	EndTimestamp *time.Time `json:"end_timestamp,omitempty"`
	Description  string     `json:"description"`
}

// Open reports whether the event is still in progress
func (e *Event) Open() bool {
	return e.EndTimestamp == nil
}

// Duration returns the elapsed time between start and close.
// The second return value is false while the event is still open.
func (e *Event) Duration() (time.Duration, bool) {
	if e.EndTimestamp == nil {
		return 0, false
	}
	return e.EndTimestamp.Sub(e.Timestamp), true
}

// DurationMs returns the derived duration in milliseconds, computed at
// read time and never stored
func (e *Event) DurationMs() (int64, bool) {
	d, ok := e.Duration()
	if !ok {
		return 0, false
	}
	return d.Milliseconds(), true
}

// FormatDuration renders a duration for display: "< 1 min" under a minute,
// whole minutes up to an hour, then hours with a minute remainder
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return "< 1 min"
	}
	mins := int(d.Minutes())
	if mins < 60 {
		return fmt.Sprintf("%d min", mins)
	}
	hours := mins / 60
	rem := mins % 60
	if rem == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dmin", hours, rem)
}

// DurationLabel renders the event's derived duration, or "open" while the
// event is still in progress
func (e *Event) DurationLabel() string {
	d, ok := e.Duration()
	if !ok {
		return "open"
	}
	return FormatDuration(d)
}
