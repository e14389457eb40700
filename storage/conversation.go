// Package storage provides conversation persistence.
//
// Information Hiding:
// - Storage backend implementation details hidden behind interface
// - Allows swapping between memory and SQLite without API changes
// - Each implementation encapsulates its own data structures and schema
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hussain-wac/chatfreegpt-rewamp/llm"
)

// Conversation is one stored chat thread: an identifier, a display
// title, and the message history in order.
type Conversation struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Messages  []llm.ChatMessage `json:"messages"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// NewConversation creates an empty conversation with a fresh ID.
func NewConversation(title string) Conversation {
	now := time.Now().UTC()
	return Conversation{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ConversationStorage defines the interface for persisting conversations.
// Implementations can use different backends (memory, database, file).
type ConversationStorage interface {
	// Save stores or replaces a conversation.
	Save(ctx context.Context, convo Conversation) error

	// Load loads a conversation by ID.
	// Returns found=false (not an error) when the ID is unknown;
	// errors indicate storage failures only.
	Load(ctx context.Context, id string) (convo Conversation, found bool, err error)

	// Delete removes a conversation. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns all stored conversations, most recently updated first.
	List(ctx context.Context) ([]Conversation, error)

	// Exists checks whether a conversation ID is known.
	Exists(ctx context.Context, id string) (bool, error)
}
