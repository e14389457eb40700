package task

import (
	"context"
	"fmt"
	"strings"
)

const gmailComposeURL = "https://mail.google.com/mail/?view=cm"

// GmailHandler opens a Gmail compose window with pre-filled fields.
type GmailHandler struct {
	actuator Actuator
}

// NewGmailHandler creates the handler for the "gmail" task type.
func NewGmailHandler(actuator Actuator) *GmailHandler {
	return &GmailHandler{actuator: actuator}
}

// Type returns the task-type identifier.
func (h *GmailHandler) Type() string { return "gmail" }

// Execute parses params as "to|subject|body". Trailing fields may be
// omitted and default to empty; missing fields are never an error. A
// body containing '|' is kept intact.
func (h *GmailHandler) Execute(ctx context.Context, params string) Result {
	parts := strings.SplitN(params, "|", 3)

	field := func(i int) string {
		if i < len(parts) {
			return strings.TrimSpace(parts[i])
		}
		return ""
	}
	to, subject, body := field(0), field(1), field(2)

	target := gmailComposeURL
	if to != "" {
		target += "&to=" + queryEscape(to)
	}
	if subject != "" {
		target += "&su=" + queryEscape(subject)
	}
	if body != "" {
		target += "&body=" + queryEscape(body)
	}

	if err := h.actuator.OpenExternal(ctx, target); err != nil {
		return failureResult(h.Type(), "Failed to open Gmail: %v", err)
	}

	return successResult(h.Type(), fmt.Sprintf("Opened Gmail compose for: %s", to), target)
}
