package models

import (
	"strings"
	"unicode/utf8"
)

const (
	// MaxNameLength is the longest allowed session name, in runes, after trimming
	MaxNameLength = 100
	// MaxDescriptionLength is the longest allowed event description, in runes
	MaxDescriptionLength = 500
)

// ValidateSessionName checks that a name is non-empty after trimming and
// within the length limit
func ValidateSessionName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if utf8.RuneCountInString(trimmed) > MaxNameLength {
		return &ValidationError{Field: "name", Reason: "must be at most 100 characters"}
	}
	return nil
}

// ValidateDescription checks the event description length limit
func ValidateDescription(description string) error {
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return &ValidationError{Field: "description", Reason: "must be at most 500 characters"}
	}
	return nil
}

// IsSessionType reports whether a value is a known session type
func IsSessionType(value string) bool {
	for _, t := range SessionTypes() {
		if string(t) == value {
			return true
		}
	}
	return false
}

// IsEventTag reports whether a value is a known event tag
func IsEventTag(value string) bool {
	for _, t := range EventTags() {
		if string(t) == value {
			return true
		}
	}
	return false
}

// NormalizeSessionType returns the value unchanged when it is a known type
// and the default otherwise. Total and idempotent, so persisted values that
// were corrupted or written by an older build read back as a valid type.
func NormalizeSessionType(value string) SessionType {
	if IsSessionType(value) {
		return SessionType(value)
	}
	return DefaultSessionType
}

// ParseSessionType resolves user input to a session type, ignoring case
// and separators ("board-game" matches "Board Game")
func ParseSessionType(input string) (SessionType, bool) {
	canon := func(s string) string {
		s = strings.ToLower(s)
		s = strings.ReplaceAll(s, " ", "")
		s = strings.ReplaceAll(s, "-", "")
		s = strings.ReplaceAll(s, "_", "")
		return s
	}
	for _, t := range SessionTypes() {
		if canon(string(t)) == canon(input) {
			return t, true
		}
	}
	return "", false
}

// ParseEventTag resolves user input to an event tag, ignoring case
func ParseEventTag(input string) (EventTag, bool) {
	for _, t := range EventTags() {
		if strings.EqualFold(string(t), strings.TrimSpace(input)) {
			return t, true
		}
	}
	return "", false
}
