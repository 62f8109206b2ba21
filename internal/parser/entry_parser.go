package parser

import (
	"regexp"
	"strings"
)

// ParsedEntry represents a log entry parsed from natural language
type ParsedEntry struct {
	Description string
	Tag         string
	Errors      []string
}

// ParseEntry extracts a tag from a log entry using natural syntax
// Syntax: "Fought the dragon #combat"
func ParseEntry(input string) ParsedEntry {
	result := ParsedEntry{
		Description: input,
		Errors:      []string{},
	}

	// Extract the tag (#combat, #roleplay, ...)
	tagRegex := regexp.MustCompile(`#([a-zA-Z]+)`)
	tagMatches := tagRegex.FindAllStringSubmatch(input, -1)
	if len(tagMatches) > 1 {
		result.Errors = append(result.Errors, "only one #tag is allowed per entry")
	}
	if len(tagMatches) > 0 && len(tagMatches[0]) > 1 {
		result.Tag = tagMatches[0][1]
		// Remove from description
		input = tagRegex.ReplaceAllString(input, "")
	}

	// Clean up the description (remove extra spaces)
	result.Description = strings.Join(strings.Fields(input), " ")

	return result
}
