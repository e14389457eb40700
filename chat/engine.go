package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hussain-wac/chatfreegpt-rewamp/llm"
	"github.com/hussain-wac/chatfreegpt-rewamp/marker"
)

// Request carries one chat turn. History is supplied by the caller and
// already cleaned (see CleanHistory); the engine holds no conversation
// state of its own.
type Request struct {
	Query       string
	Model       string // empty means the engine default
	History     []llm.ChatMessage
	ExtraSystem string // e.g. formatted search results
}

// StreamFunc receives each response chunk as it arrives. Returning an
// error stops the stream (caller disconnect).
type StreamFunc func(chunk string) error

// Engine runs chat turns against an LLM provider.
type Engine struct {
	provider     llm.Provider
	defaultModel string
	logger       *slog.Logger
	now          func() time.Time
}

// NewEngine creates an engine bound to a provider and default model.
func NewEngine(provider llm.Provider, defaultModel string, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		provider:     provider,
		defaultModel: defaultModel,
		logger:       logger,
		now:          time.Now,
	}
}

// DefaultModel returns the model used when a request names none.
func (e *Engine) DefaultModel() string {
	return e.defaultModel
}

// Provider returns the underlying LLM provider.
func (e *Engine) Provider() llm.Provider {
	return e.provider
}

// Query runs one non-streaming chat turn and returns the raw response
// text, task markers included.
func (e *Engine) Query(ctx context.Context, req Request) (string, error) {
	model := e.model(req)
	messages := BuildMessages(req.Query, req.History, req.ExtraSystem, e.now())

	response, err := e.provider.Chat(ctx, model, messages)
	if err != nil {
		e.logger.Error("chat request failed",
			slog.String("provider", e.provider.Name()),
			slog.String("model", model),
			slog.Any("error", err))
		return "", fmt.Errorf("model backend: %w", err)
	}

	return response, nil
}

// QueryStream runs one streaming chat turn. Every chunk from the backend is
// passed to emit in order, exactly once, as soon as it arrives. On a backend
// fault mid-stream a single terminal "Error: ..." chunk is emitted and the
// fault is returned; chunks already relayed are never resent. On success the
// accumulated response is returned marker-stripped, ready for history
// persistence (the raw text was already fully relayed).
//
// If emit returns an error the backend stream is cancelled and the relay
// stops without emitting anything further.
func (e *Engine) QueryStream(ctx context.Context, req Request, emit StreamFunc) (string, error) {
	model := e.model(req)
	messages := BuildMessages(req.Query, req.History, req.ExtraSystem, e.now())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	chunks := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(chunks)
		errc <- e.provider.StreamChat(ctx, model, messages, chunks)
	}()

	var full strings.Builder
	for chunk := range chunks {
		full.WriteString(chunk)
		if err := emit(chunk); err != nil {
			// Consumer is gone; release the backend stream and drain
			// so the producer goroutine can exit.
			cancel()
			for range chunks {
			}
			<-errc
			return "", fmt.Errorf("stream consumer: %w", err)
		}
	}

	if err := <-errc; err != nil {
		e.logger.Error("stream failed",
			slog.String("provider", e.provider.Name()),
			slog.String("model", model),
			slog.Any("error", err))
		// Best effort: the consumer may already be gone too.
		_ = emit(fmt.Sprintf("Error: %v", err))
		return "", err
	}

	return marker.Strip(full.String()), nil
}

func (e *Engine) model(req Request) string {
	if req.Model != "" {
		return req.Model
	}
	return e.defaultModel
}
