// Package config provides application settings loaded from environment variables.
//
// Settings are created via New() which handles:
// - Environment variable parsing with validation
// - Default value application
// - Provider-specific model lookup
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hussain-wac/chatfreegpt-rewamp/llm"
)

// Settings holds all application configuration.
type Settings struct {
	LLM     LLMConfig
	Server  ServerConfig
	Search  SearchConfig
	Task    TaskConfig
	Storage StorageConfig
}

// LLMConfig holds model backend configuration.
type LLMConfig struct {
	Provider    string
	Model       string
	MaxTokens   uint32
	Temperature float64
	OllamaHost  string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port          int
	AllowedOrigin string
}

// Addr returns the listen address for the HTTP server.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// SearchConfig holds SearXNG configuration.
type SearchConfig struct {
	BaseURL    string
	Timeout    time.Duration
	MaxResults int
	MaxImages  int
}

// TaskConfig holds browser task configuration.
type TaskConfig struct {
	SearchEngine         string
	YouTubeLookupTimeout time.Duration
}

// StorageConfig holds conversation persistence configuration.
type StorageConfig struct {
	// Backend is "memory" or "sqlite".
	Backend    string
	SqlitePath string
}

// Per-provider model environment variables; the provider's built-in
// default applies when unset.
func modelEnvVar(providerType llm.ProviderType) string {
	switch providerType {
	case llm.ProviderOllama:
		return "OLLAMA_MODEL"
	case llm.ProviderOpenAI:
		return "OPENAI_MODEL"
	case llm.ProviderAnthropic:
		return "ANTHROPIC_MODEL"
	case llm.ProviderGemini:
		return "GEMINI_MODEL"
	case llm.ProviderDeepSeek:
		return "DEEPSEEK_MODEL"
	default:
		return ""
	}
}

// New creates settings for the specified provider, loading values from
// environment variables. Returns an error if the provider is unknown or
// environment variables contain invalid values.
func New(provider string) (Settings, error) {
	providerType, err := llm.ParseProviderType(provider)
	if err != nil {
		return Settings{}, err
	}

	maxTokens, err := getEnvUint32("LLM_MAX_TOKENS", 4096)
	if err != nil {
		return Settings{}, err
	}
	temperature, err := getEnvFloat64("LLM_TEMPERATURE", 0.7)
	if err != nil {
		return Settings{}, err
	}

	port, err := getEnvInt("PORT", 5000)
	if err != nil {
		return Settings{}, err
	}
	if port <= 0 || port > 65535 {
		return Settings{}, fmt.Errorf("invalid value for PORT: %d", port)
	}

	searchTimeout, err := getEnvInt("SEARXNG_TIMEOUT_SECONDS", 10)
	if err != nil {
		return Settings{}, err
	}
	maxResults, err := getEnvInt("SEARCH_MAX_RESULTS", 5)
	if err != nil {
		return Settings{}, err
	}
	maxImages, err := getEnvInt("SEARCH_MAX_IMAGES", 4)
	if err != nil {
		return Settings{}, err
	}

	lookupTimeout, err := getEnvInt("YOUTUBE_LOOKUP_TIMEOUT_SECONDS", 8)
	if err != nil {
		return Settings{}, err
	}

	backend := getEnv("STORAGE_BACKEND", "memory")
	if backend != "memory" && backend != "sqlite" {
		return Settings{}, fmt.Errorf("invalid value for STORAGE_BACKEND: %q (want memory or sqlite)", backend)
	}

	model := os.Getenv(modelEnvVar(providerType))
	if model == "" {
		model = providerType.DefaultModel()
	}

	return Settings{
		LLM: LLMConfig{
			Provider:    providerType.String(),
			Model:       model,
			MaxTokens:   maxTokens,
			Temperature: temperature,
			OllamaHost:  getEnv("OLLAMA_HOST", "http://localhost:11434"),
		},
		Server: ServerConfig{
			Port:          port,
			AllowedOrigin: getEnv("CORS_ORIGIN", "*"),
		},
		Search: SearchConfig{
			BaseURL:    getEnv("SEARXNG_URL", "http://localhost:8888"),
			Timeout:    time.Duration(searchTimeout) * time.Second,
			MaxResults: maxResults,
			MaxImages:  maxImages,
		},
		Task: TaskConfig{
			SearchEngine:         getEnv("TASK_SEARCH_ENGINE", "google"),
			YouTubeLookupTimeout: time.Duration(lookupTimeout) * time.Second,
		},
		Storage: StorageConfig{
			Backend:    backend,
			SqlitePath: getEnv("SQLITE_PATH", ".chatfreegpt/conversations.db"),
		},
	}, nil
}

// Environment variable helpers with proper error handling

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q: %w", key, val, err)
	}
	return i, nil
}

func getEnvUint32(key string, defaultVal uint32) (uint32, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	i, err := strconv.ParseUint(val, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q: %w", key, val, err)
	}
	return uint32(i), nil
}

func getEnvFloat64(key string, defaultVal float64) (float64, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q: %w", key, val, err)
	}
	return f, nil
}
