package task

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Registry maps task-type identifiers to handlers. It is populated once
// at startup and read-only afterwards; Execute is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
	}
}

// Register adds a handler to the registry.
// Returns an error if a handler for the same task type already exists.
func (r *Registry) Register(handler Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	taskType := handler.Type()
	if _, exists := r.handlers[taskType]; exists {
		return fmt.Errorf("handler '%s' already registered", taskType)
	}
	r.handlers[taskType] = handler
	return nil
}

// Types returns all registered task types in sorted order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.handlers))
	for taskType := range r.handlers {
		types = append(types, taskType)
	}
	sort.Strings(types)
	return types
}

// Execute dispatches params to the handler for taskType. An unknown task
// type or a panicking handler produces a failure Result; Execute never
// lets a fault escape to the caller.
func (r *Registry) Execute(ctx context.Context, taskType, params string) (result Result) {
	defer func() {
		if rec := recover(); rec != nil {
			result = failureResult(taskType, "Task execution error: %v", rec)
		}
	}()

	r.mu.RLock()
	handler, exists := r.handlers[taskType]
	r.mu.RUnlock()

	if !exists {
		return failureResult(taskType, "Unknown task type: %s", taskType)
	}

	return handler.Execute(ctx, params)
}

// Config holds handler configuration for a default registry.
type Config struct {
	// SearchEngine selects the search destination: "google" (default)
	// or "duckduckgo".
	SearchEngine string
	// YouTubeLookupTimeout bounds the first-video lookup (default 8s).
	YouTubeLookupTimeout time.Duration
}

// WithDefaults creates a registry with the standard handler set:
// open, search, gmail, youtube.
func WithDefaults(actuator Actuator, conf Config) (*Registry, error) {
	registry := NewRegistry()

	handlers := []Handler{
		NewOpenHandler(actuator),
		NewSearchHandler(actuator, conf.SearchEngine),
		NewGmailHandler(actuator),
		NewYouTubeHandler(actuator, conf.YouTubeLookupTimeout),
	}

	for _, h := range handlers {
		if err := registry.Register(h); err != nil {
			return nil, fmt.Errorf("failed to register default handlers: %w", err)
		}
	}

	return registry, nil
}
