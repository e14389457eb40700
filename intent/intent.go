// Package intent derives soft hints about likely task intent from a query.
//
// Hints are advisory text appended to the user turn so the model can decide
// whether to emit a task marker; nothing downstream parses them. The package
// also produces a current date/time annotation for temporal queries so the
// model never guesses the date.
package intent

import (
	"fmt"
	"strings"
	"time"
)

// Keyword families scanned case-insensitively. Each family contributes at
// most one hint, in declaration order.
var hintFamilies = []struct {
	keywords []string
	hint     string
}{
	{
		keywords: []string{"play", "youtube", "music", "song", "video", "watch", "listen"},
		hint:     "User might want to play something on YouTube",
	},
	{
		keywords: []string{"email", "mail", "send", "compose", "write to", "message to"},
		hint:     "User might want to compose an email",
	},
	{
		keywords: []string{"search", "look up", "find", "google", "search for"},
		hint:     "User might want to search the web",
	},
	{
		keywords: []string{"open", "go to", "visit", "navigate to", ".com", ".org", ".net", "website"},
		hint:     "User might want to open a website",
	},
}

var temporalKeywords = []string{"time", "date", "today", "now", "current"}

// DeriveHints returns the hints whose keyword family matches the query.
func DeriveHints(query string) []string {
	q := strings.ToLower(query)

	var hints []string
	for _, family := range hintFamilies {
		if containsAny(q, family.keywords) {
			hints = append(hints, family.hint)
		}
	}
	return hints
}

// TimeContext formats the current date and time for prompt injection.
func TimeContext(now time.Time) string {
	return fmt.Sprintf("Current date: %s. Current time: %s",
		now.Format("Monday, January 02, 2006"),
		now.Format("03:04 PM"))
}

// Annotate builds the annotation block for a query: a time-context line when
// the query contains temporal keywords, then a hints line when any hint
// family matched. Returns "" when nothing applies. The block starts with a
// newline so callers can append it directly to the query text.
func Annotate(query string, now time.Time) string {
	q := strings.ToLower(query)

	var annotation string
	if containsAny(q, temporalKeywords) {
		annotation += fmt.Sprintf("\n[Context: %s]", TimeContext(now))
	}
	if hints := DeriveHints(query); len(hints) > 0 {
		annotation += fmt.Sprintf("\n[Hints: %s]", strings.Join(hints, "; "))
	}
	return annotation
}

func containsAny(q string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(q, keyword) {
			return true
		}
	}
	return false
}
