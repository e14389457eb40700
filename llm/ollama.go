// Ollama Provider implementation using the official ollama API client.
//
// Information Hiding:
// - Client construction from a host URL
// - Callback-based streaming bridged to the channel contract
// - Model listing and heartbeat via the tags/heartbeat endpoints

package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	ollamaapi "github.com/ollama/ollama/api"
)

// OllamaProvider implements the Provider interface for a local or remote
// Ollama server.
type OllamaProvider struct {
	client *ollamaapi.Client
}

// NewOllamaProvider creates a new Ollama provider for the given host URL,
// e.g. "http://localhost:11434".
func NewOllamaProvider(host string) (*OllamaProvider, error) {
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
	}
	if u.Scheme == "" {
		u = &url.URL{Scheme: "http", Host: host}
	}

	return &OllamaProvider{
		client: ollamaapi.NewClient(u, http.DefaultClient),
	}, nil
}

// Name returns the provider name.
func (p *OllamaProvider) Name() string {
	return "ollama"
}

// Chat sends a chat completion request.
func (p *OllamaProvider) Chat(ctx context.Context, model string, messages []ChatMessage) (string, error) {
	stream := false
	var content string

	err := p.client.Chat(ctx, &ollamaapi.ChatRequest{
		Model:    model,
		Messages: convertToOllamaMessages(messages),
		Stream:   &stream,
	}, func(response ollamaapi.ChatResponse) error {
		content += response.Message.Content
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	return content, nil
}

// StreamChat streams a chat completion.
func (p *OllamaProvider) StreamChat(ctx context.Context, model string, messages []ChatMessage, chunks chan<- string) error {
	stream := true

	err := p.client.Chat(ctx, &ollamaapi.ChatRequest{
		Model:    model,
		Messages: convertToOllamaMessages(messages),
		Stream:   &stream,
	}, func(response ollamaapi.ChatResponse) error {
		if response.Message.Content == "" {
			return nil
		}
		select {
		case chunks <- response.Message.Content:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	if err != nil {
		return fmt.Errorf("stream failed: %w", err)
	}

	return nil
}

// ListModels returns the names of models available on the Ollama server.
func (p *OllamaProvider) ListModels(ctx context.Context) ([]string, error) {
	resp, err := p.client.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	models := make([]string, len(resp.Models))
	for i, m := range resp.Models {
		models[i] = m.Name
	}
	return models, nil
}

// HealthCheck verifies the Ollama server is reachable.
func (p *OllamaProvider) HealthCheck(ctx context.Context) error {
	if err := p.client.Heartbeat(ctx); err != nil {
		return fmt.Errorf("ollama is unreachable: %w", err)
	}
	return nil
}

func convertToOllamaMessages(messages []ChatMessage) []ollamaapi.Message {
	result := make([]ollamaapi.Message, len(messages))
	for i, msg := range messages {
		result[i] = ollamaapi.Message{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}
	return result
}

// Verify OllamaProvider implements Provider and the optional interfaces.
var (
	_ Provider      = (*OllamaProvider)(nil)
	_ ModelLister   = (*OllamaProvider)(nil)
	_ HealthChecker = (*OllamaProvider)(nil)
)
