// Package llm provides LLM provider abstractions.
//
// LLM Provider interface - the abstract interface for LLM providers.
// Each provider implementation hides:
// - API client initialization and authentication
// - Request/response format conversion
// - Provider-specific error handling

package llm

import (
	"context"
)

// Provider defines the abstract interface for LLM providers.
// Implementations hide provider-specific details while exposing
// a consistent interface for chat completions. The model is chosen
// per request so one provider can serve every model it hosts.
type Provider interface {
	// Name returns the provider name (for logging/debugging).
	Name() string

	// Chat sends a chat completion request and returns the full response text.
	Chat(ctx context.Context, model string, messages []ChatMessage) (string, error)

	// StreamChat streams a chat completion, sending chunks to the provided
	// channel in generation order. The channel is not closed by the provider;
	// the caller owns its lifecycle. Returns once generation completes, the
	// backend fails, or ctx is cancelled.
	StreamChat(ctx context.Context, model string, messages []ChatMessage, chunks chan<- string) error
}

// ModelLister is implemented by providers that can enumerate the models
// available on their backend.
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// HealthChecker is implemented by providers that can cheaply verify
// their backend is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
