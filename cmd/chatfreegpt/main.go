// Package main provides the chatfreegpt CLI entry point.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hussain-wac/chatfreegpt-rewamp/chat"
	"github.com/hussain-wac/chatfreegpt-rewamp/cli"
	"github.com/hussain-wac/chatfreegpt-rewamp/config"
	"github.com/hussain-wac/chatfreegpt-rewamp/llm"
	"github.com/hussain-wac/chatfreegpt-rewamp/search"
	"github.com/hussain-wac/chatfreegpt-rewamp/server"
	"github.com/hussain-wac/chatfreegpt-rewamp/storage"
	"github.com/hussain-wac/chatfreegpt-rewamp/task"
)

var (
	// Global flags
	providerName string
	modelName    string
)

func main() {
	// Load .env file if present (ignore "file not found" errors)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
		}
	}

	rootCmd := &cobra.Command{
		Use:   "chatfreegpt",
		Short: "Conversational assistant with task markers and web search",
		Long: `An LLM chat layer that turns model responses into actions.

The model emits [TASK:type:params] markers for things like playing a
YouTube video, composing a Gmail draft, or opening a site; the task
registry executes them. Web search augmentation feeds SearXNG results
into the model as citable context.`,
	}

	rootCmd.PersistentFlags().StringVarP(&providerName, "provider", "p", "ollama", "LLM provider (ollama, openai, anthropic, gemini, deepseek)")
	rootCmd.PersistentFlags().StringVarP(&modelName, "model", "m", "", "Model name (provider default when empty)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(chatCmd())
	rootCmd.AddCommand(modelsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// components holds the wired application pieces.
type components struct {
	settings config.Settings
	provider llm.Provider
	engine   *chat.Engine
	searcher *search.Client
	planner  *search.Planner
	store    storage.ConversationStorage
	closer   func()
}

// build wires the application from settings, with the given actuator
// behind the task registry.
func build(actuator task.Actuator, logger *slog.Logger) (*components, *task.Registry, error) {
	settings, err := config.New(providerName)
	if err != nil {
		return nil, nil, err
	}
	if modelName != "" {
		settings.LLM.Model = modelName
	}

	providerType, err := llm.ParseProviderType(settings.LLM.Provider)
	if err != nil {
		return nil, nil, err
	}
	provider, err := llm.New(providerType, llm.Options{
		OllamaHost:  settings.LLM.OllamaHost,
		MaxTokens:   settings.LLM.MaxTokens,
		Temperature: float32(settings.LLM.Temperature),
	})
	if err != nil {
		return nil, nil, err
	}

	registry, err := task.WithDefaults(actuator, task.Config{
		SearchEngine:         settings.Task.SearchEngine,
		YouTubeLookupTimeout: settings.Task.YouTubeLookupTimeout,
	})
	if err != nil {
		return nil, nil, err
	}

	searcher := search.NewClient(settings.Search.BaseURL, settings.Search.Timeout)
	planner := search.NewPlanner(searcher, settings.Search.MaxResults, settings.Search.MaxImages, logger)

	var store storage.ConversationStorage
	closer := func() {}
	if settings.Storage.Backend == "sqlite" {
		sqlite, err := storage.OpenSqlite(settings.Storage.SqlitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		store = sqlite
		closer = func() { _ = sqlite.Close() }
	} else {
		store = storage.NewInMemoryStorage()
	}

	return &components{
		settings: settings,
		provider: provider,
		engine:   chat.NewEngine(provider, settings.LLM.Model, logger),
		searcher: searcher,
		planner:  planner,
		store:    store,
		closer:   closer,
	}, registry, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			// The server reports task URLs back to the frontend
			// instead of opening a browser on the host.
			c, registry, err := build(task.NopActuator{}, logger)
			if err != nil {
				return err
			}
			defer c.closer()

			srv := server.New(c.engine, c.planner, c.searcher, registry, c.store, logger, server.Options{
				AllowedOrigin:    c.settings.Server.AllowedOrigin,
				MaxSearchResults: c.settings.Search.MaxResults,
			})

			logger.Info("starting API server",
				slog.String("addr", c.settings.Server.Addr()),
				slog.String("provider", c.provider.Name()),
				slog.String("model", c.settings.LLM.Model))

			return http.ListenAndServe(c.settings.Server.Addr(), srv.Handler())
		},
	}
}

func chatCmd() *cobra.Command {
	var conversationID string
	var executeTasks bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, registry, err := build(cli.BrowserActuator{}, slog.Default())
			if err != nil {
				return err
			}
			defer c.closer()

			return cli.Chat(context.Background(), c.engine, registry, c.store, cli.Options{
				ConversationID: conversationID,
				ExecuteTasks:   executeTasks,
			})
		},
	}

	cmd.Flags().StringVar(&conversationID, "conversation", "", "Conversation ID to resume")
	cmd.Flags().BoolVar(&executeTasks, "execute-tasks", true, "Execute detected task markers")

	return cmd
}

func modelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List models the provider offers",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := build(task.NopActuator{}, slog.Default())
			if err != nil {
				return err
			}
			defer c.closer()

			lister, ok := c.provider.(llm.ModelLister)
			if !ok {
				return fmt.Errorf("provider %s does not support model listing", c.provider.Name())
			}

			models, err := lister.ListModels(context.Background())
			if err != nil {
				return err
			}
			for _, m := range models {
				fmt.Println(m)
			}
			return nil
		},
	}
}
