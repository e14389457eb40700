// Package marker implements the inline task-marker grammar.
//
// A task marker is a textual directive the model embeds at the end of a
// response to request a side-effecting action:
//
//	[TASK:youtube:Shape of You Ed Sheeran]
//	[TASK:gmail:john@example.com|Meeting Tomorrow|Hi John]
//
// The grammar is [TASK:<type>:<params>] where <type> matches \w+ and
// <params> is any run of characters excluding ']'. Params containing a
// literal ']' cannot be represented; there is no escaping scheme.
// Anything that does not match the grammar is plain text.
package marker

import (
	"regexp"
	"strings"
)

var markerPattern = regexp.MustCompile(`\[TASK:(\w+):([^\]]+)\]`)

// Marker is a parsed task marker.
type Marker struct {
	Type   string `json:"type"`
	Params string `json:"params"`
}

// Extract returns all task markers in text, left to right, non-overlapping.
// Returns nil when text contains no marker.
func Extract(text string) []Marker {
	matches := markerPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	markers := make([]Marker, len(matches))
	for i, m := range matches {
		markers[i] = Marker{Type: m[1], Params: m[2]}
	}
	return markers
}

// First returns the first task marker in text, or false when none exists.
// Responses carry at most one marker by convention; callers that act on
// markers act on this one.
func First(text string) (Marker, bool) {
	m := markerPattern.FindStringSubmatch(text)
	if m == nil {
		return Marker{}, false
	}
	return Marker{Type: m[1], Params: m[2]}, true
}

// Strip removes every task marker from text and trims surrounding
// whitespace. Stripping is idempotent.
func Strip(text string) string {
	return strings.TrimSpace(markerPattern.ReplaceAllString(text, ""))
}
