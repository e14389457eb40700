// LLM Provider Factory.
//
// Quick Start:
//
//	// Default: local Ollama, no API key needed
//	provider, err := llm.FromEnv("ollama")
//
//	// Hosted providers read their API key from the environment
//	claude, err := llm.FromEnv("anthropic")  // ANTHROPIC_API_KEY
//	gpt, err := llm.FromEnv("openai")        // OPENAI_API_KEY

package llm

import (
	"fmt"
	"os"
	"strings"
)

const deepseekBaseURL = "https://api.deepseek.com/v1"

// ProviderType represents supported LLM providers.
type ProviderType int

const (
	// ProviderOllama is a local or remote Ollama server (default).
	ProviderOllama ProviderType = iota
	// ProviderOpenAI is the OpenAI provider (GPT models).
	ProviderOpenAI
	// ProviderAnthropic is the Anthropic provider (Claude models).
	ProviderAnthropic
	// ProviderGemini is the Google Gemini provider.
	ProviderGemini
	// ProviderDeepSeek is the DeepSeek provider (OpenAI-compatible API).
	ProviderDeepSeek
)

// String returns the string representation of the provider type.
func (p ProviderType) String() string {
	switch p {
	case ProviderOllama:
		return "ollama"
	case ProviderOpenAI:
		return "openai"
	case ProviderAnthropic:
		return "anthropic"
	case ProviderGemini:
		return "gemini"
	case ProviderDeepSeek:
		return "deepseek"
	default:
		return "unknown"
	}
}

// EnvVar returns the environment variable name for this provider's API key.
// Ollama needs no key and returns "".
func (p ProviderType) EnvVar() string {
	switch p {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case ProviderGemini:
		return "GEMINI_API_KEY"
	case ProviderDeepSeek:
		return "DEEPSEEK_API_KEY"
	default:
		return ""
	}
}

// DefaultModel returns the default model for this provider.
func (p ProviderType) DefaultModel() string {
	switch p {
	case ProviderOllama:
		return "llama3.2"
	case ProviderOpenAI:
		return "gpt-4o"
	case ProviderAnthropic:
		return "claude-sonnet-4-20250514"
	case ProviderGemini:
		return "gemini-2.0-flash"
	case ProviderDeepSeek:
		return "deepseek-chat"
	default:
		return ""
	}
}

// ParseProviderType parses a provider from string (case-insensitive).
func ParseProviderType(s string) (ProviderType, error) {
	switch strings.ToLower(s) {
	case "", "ollama":
		return ProviderOllama, nil
	case "openai", "gpt":
		return ProviderOpenAI, nil
	case "anthropic", "claude":
		return ProviderAnthropic, nil
	case "gemini", "google":
		return ProviderGemini, nil
	case "deepseek":
		return ProviderDeepSeek, nil
	default:
		return 0, fmt.Errorf("unknown provider: %s", s)
	}
}

// Options configures provider construction.
type Options struct {
	// APIKey is the key for hosted providers. When empty it is read from
	// the provider's environment variable.
	APIKey string
	// OllamaHost is the Ollama server URL (default http://localhost:11434,
	// overridable via OLLAMA_HOST).
	OllamaHost string
	// MaxTokens caps response length for providers that require it (default 4096).
	MaxTokens uint32
	// Temperature controls sampling (default 0.7).
	Temperature float32
}

// New creates a provider of the given type.
func New(providerType ProviderType, opts Options) (Provider, error) {
	if opts.MaxTokens == 0 {
		opts.MaxTokens = 4096
	}
	if opts.Temperature == 0 {
		opts.Temperature = 0.7
	}

	if providerType == ProviderOllama {
		host := opts.OllamaHost
		if host == "" {
			host = os.Getenv("OLLAMA_HOST")
		}
		if host == "" {
			host = "http://localhost:11434"
		}
		return NewOllamaProvider(host)
	}

	apiKey := opts.APIKey
	if apiKey == "" {
		apiKey = os.Getenv(providerType.EnvVar())
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%s: %s environment variable not set", providerType, providerType.EnvVar())
	}

	switch providerType {
	case ProviderOpenAI:
		return NewOpenAIProvider(apiKey, opts.MaxTokens, opts.Temperature), nil
	case ProviderAnthropic:
		return NewAnthropicProvider(apiKey, opts.MaxTokens, opts.Temperature), nil
	case ProviderGemini:
		return NewGeminiProvider(apiKey, opts.MaxTokens, opts.Temperature), nil
	case ProviderDeepSeek:
		return NewOpenAICompatibleProvider("deepseek", apiKey, deepseekBaseURL, opts.MaxTokens, opts.Temperature), nil
	default:
		return nil, fmt.Errorf("unknown provider type: %v", providerType)
	}
}

// FromEnv creates a provider by name with defaults, reading credentials
// from the environment.
func FromEnv(name string) (Provider, error) {
	providerType, err := ParseProviderType(name)
	if err != nil {
		return nil, err
	}
	return New(providerType, Options{})
}
