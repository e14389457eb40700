// Interactive chat loop for the CLI.
//
// Information Hiding:
// - Prompt handling and output formatting hidden
// - Task marker detection and dispatch hidden
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hussain-wac/chatfreegpt-rewamp/chat"
	"github.com/hussain-wac/chatfreegpt-rewamp/llm"
	"github.com/hussain-wac/chatfreegpt-rewamp/marker"
	"github.com/hussain-wac/chatfreegpt-rewamp/storage"
	"github.com/hussain-wac/chatfreegpt-rewamp/task"
)

// Options holds chat loop options.
type Options struct {
	// ConversationID resumes a stored conversation when non-empty.
	ConversationID string
	// ExecuteTasks runs detected task markers through the registry.
	ExecuteTasks bool
}

// Chat starts an interactive chat session. Responses stream to stdout
// as they arrive; task markers in the response are detected and, when
// enabled, executed. History is persisted per turn when a store is
// given.
func Chat(ctx context.Context, engine *chat.Engine, registry *task.Registry, store storage.ConversationStorage, opts Options) error {
	convo := storage.NewConversation("cli session")
	if store != nil && opts.ConversationID != "" {
		loaded, found, err := store.Load(ctx, opts.ConversationID)
		if err != nil {
			return fmt.Errorf("failed to load conversation: %w", err)
		}
		if found {
			convo = loaded
			fmt.Printf("Resuming conversation '%s' (%d messages)\n\n", convo.Title, len(convo.Messages))
		} else {
			convo.ID = opts.ConversationID
		}
	}

	fmt.Printf("Chat with %s (%s). Type 'exit' to quit, 'clear' to reset.\n\n",
		engine.Provider().Name(), engine.DefaultModel())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			break
		}
		if input == "clear" {
			convo.Messages = nil
			fmt.Println("Conversation cleared.")
			fmt.Println()
			continue
		}

		fmt.Println()
		var raw strings.Builder
		cleaned, err := engine.QueryStream(ctx, chat.Request{
			Query:   input,
			History: chat.CleanHistory(convo.Messages),
		}, func(chunk string) error {
			raw.WriteString(chunk)
			fmt.Print(chunk)
			return nil
		})
		fmt.Println()
		if err != nil {
			// The terminal error chunk was already printed in-band.
			fmt.Println()
			continue
		}

		runMarkers(ctx, registry, os.Stdout, raw.String(), opts.ExecuteTasks)
		fmt.Println()

		convo.Messages = append(convo.Messages,
			llm.UserMessage(input),
			llm.AssistantMessage(cleaned),
		)

		if store != nil {
			if err := store.Save(ctx, convo); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save conversation: %v\n", err)
			}
		}
	}

	return scanner.Err()
}

// runMarkers reports detected task markers and, when enabled, executes
// the first one. The system prompt allows one marker per response; any
// extra markers are reported but not acted on.
func runMarkers(ctx context.Context, registry *task.Registry, w io.Writer, response string, execute bool) {
	markers := marker.Extract(response)
	if len(markers) == 0 {
		return
	}

	for _, m := range markers {
		fmt.Fprintf(w, "[detected task: %s %s]\n", m.Type, m.Params)
	}
	if !execute || registry == nil {
		return
	}

	m, _ := marker.First(response)
	result := registry.Execute(ctx, m.Type, m.Params)
	if result.Success {
		fmt.Fprintf(w, "[%s] %s\n", m.Type, result.Message)
		if result.URL != "" {
			fmt.Fprintf(w, "    %s\n", result.URL)
		}
	} else {
		fmt.Fprintf(w, "[%s] failed: %s\n", m.Type, result.Message)
	}
}
