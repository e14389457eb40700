package task

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// OpenHandler opens a URL.
type OpenHandler struct {
	actuator Actuator
}

// NewOpenHandler creates the handler for the "open" task type.
func NewOpenHandler(actuator Actuator) *OpenHandler {
	return &OpenHandler{actuator: actuator}
}

// Type returns the task-type identifier.
func (h *OpenHandler) Type() string { return "open" }

// Execute opens params as a URL, prefixing https:// when no scheme is given.
func (h *OpenHandler) Execute(ctx context.Context, params string) Result {
	target := strings.TrimSpace(params)

	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		target = "https://" + target
	}

	if err := h.actuator.OpenExternal(ctx, target); err != nil {
		return failureResult(h.Type(), "Failed to open URL: %v", err)
	}

	return successResult(h.Type(), fmt.Sprintf("Opened: %s", target), target)
}

// SearchHandler opens a web search for the given query.
type SearchHandler struct {
	actuator Actuator
	engine   string
}

// NewSearchHandler creates the handler for the "search" task type.
// Supported engines are "google" (default) and "duckduckgo".
func NewSearchHandler(actuator Actuator, engine string) *SearchHandler {
	if engine == "" {
		engine = "google"
	}
	return &SearchHandler{actuator: actuator, engine: engine}
}

// Type returns the task-type identifier.
func (h *SearchHandler) Type() string { return "search" }

// Execute opens a search-results page for params on the configured engine.
func (h *SearchHandler) Execute(ctx context.Context, params string) Result {
	query := queryEscape(strings.TrimSpace(params))

	var target string
	if h.engine == "duckduckgo" {
		target = "https://duckduckgo.com/?q=" + query
	} else {
		target = "https://www.google.com/search?q=" + query
	}

	if err := h.actuator.OpenExternal(ctx, target); err != nil {
		return failureResult(h.Type(), "Failed to search: %v", err)
	}

	return successResult(h.Type(), fmt.Sprintf("Searching for: %s", strings.TrimSpace(params)), target)
}

// queryEscape percent-encodes s for use in a URL query, encoding spaces
// as %20 rather than '+' so links paste cleanly outside HTML forms.
func queryEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
