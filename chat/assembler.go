// Package chat assembles model input and runs the query/streaming pipeline.
//
// Information Hiding:
// - Message assembly rules (system prompt, history window, annotations) hidden
// - Streaming relay and history-cleaning internals hidden behind Engine
package chat

import (
	"time"

	"github.com/hussain-wac/chatfreegpt-rewamp/intent"
	"github.com/hussain-wac/chatfreegpt-rewamp/llm"
	"github.com/hussain-wac/chatfreegpt-rewamp/marker"
)

// maxHistoryMessages is the rolling window of prior messages sent to the
// model; storage may keep more, every model call sees at most this many.
const maxHistoryMessages = 20

// BuildMessages constructs the message sequence for one model request:
// the system prompt (plus extraSystem when present), up to the last 20
// history messages in original order, and the current query with its
// annotation block. The caller's history slice is never mutated. The
// result holds at most 22 messages.
func BuildMessages(query string, history []llm.ChatMessage, extraSystem string, now time.Time) []llm.ChatMessage {
	system := systemPrompt
	if extraSystem != "" {
		system += "\n\n" + extraSystem
	}

	if len(history) > maxHistoryMessages {
		history = history[len(history)-maxHistoryMessages:]
	}

	messages := make([]llm.ChatMessage, 0, len(history)+2)
	messages = append(messages, llm.SystemMessage(system))
	messages = append(messages, history...)
	messages = append(messages, llm.UserMessage(query+intent.Annotate(query, now)))

	return messages
}

// CleanHistory prepares stored history for a model call: truncates to the
// last 20 messages and strips task markers from assistant turns so old
// markers never re-enter context. Returns a new slice; the input is not
// modified.
func CleanHistory(history []llm.ChatMessage) []llm.ChatMessage {
	if len(history) > maxHistoryMessages {
		history = history[len(history)-maxHistoryMessages:]
	}

	cleaned := make([]llm.ChatMessage, len(history))
	for i, msg := range history {
		cleaned[i] = msg
		if msg.Role == llm.RoleAssistant {
			cleaned[i].Content = marker.Strip(msg.Content)
		}
	}
	return cleaned
}
