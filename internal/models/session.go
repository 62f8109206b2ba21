package models

import (
	"time"
)

// SessionType classifies what kind of game a session logs
type SessionType string

const (
	SessionTypeRPG       SessionType = "RPG"
	SessionTypeBoardGame SessionType = "Board Game"
	SessionTypeCardGame  SessionType = "Card Game"
	SessionTypeOther     SessionType = "Other"
)

// DefaultSessionType is substituted when a persisted type is missing or unknown
const DefaultSessionType = SessionTypeRPG

// SessionTypes returns every known session type in display order
func SessionTypes() []SessionType {
	return []SessionType{
		SessionTypeRPG,
		SessionTypeBoardGame,
		SessionTypeCardGame,
		SessionTypeOther,
	}
}

// Session represents a named container of logged events
type Session struct {
	ID        string      `gorm:"primaryKey" json:"id"`
	Name      string      `gorm:"not null" json:"name"`
	Type      SessionType `gorm:"index" json:"type"`
	CreatedAt time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// TagsForType returns the tags relevant to a session type. This is a
// presentation hint only; storage accepts any known tag regardless of type.
func TagsForType(t SessionType) []EventTag {
	switch NormalizeSessionType(string(t)) {
	case SessionTypeRPG:
		return []EventTag{TagCombat, TagRoleplay, TagExploration, TagDowntime, TagNote}
	case SessionTypeBoardGame:
		return []EventTag{TagSetup, TagTurn, TagScoring, TagNote}
	case SessionTypeCardGame:
		return []EventTag{TagSetup, TagRound, TagScoring, TagNote}
	default:
		return []EventTag{TagNote}
	}
}
