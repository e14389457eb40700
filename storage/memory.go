package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/hussain-wac/chatfreegpt-rewamp/llm"
)

// InMemoryStorage implements ConversationStorage using an in-memory map.
// Data is lost when the process terminates. Suitable for testing and
// ephemeral sessions.
type InMemoryStorage struct {
	mu     sync.RWMutex
	convos map[string]Conversation
}

// NewInMemoryStorage creates a new in-memory storage.
func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{
		convos: make(map[string]Conversation),
	}
}

// Save stores or replaces a conversation.
func (s *InMemoryStorage) Save(ctx context.Context, convo Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.convos[convo.ID] = copyConversation(convo)
	return nil
}

// Load loads a conversation by ID.
func (s *InMemoryStorage) Load(ctx context.Context, id string) (Conversation, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	convo, ok := s.convos[id]
	if !ok {
		return Conversation{}, false, nil
	}
	return copyConversation(convo), true, nil
}

// Delete removes a conversation.
func (s *InMemoryStorage) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.convos, id)
	return nil
}

// List returns all conversations, most recently updated first.
func (s *InMemoryStorage) List(ctx context.Context) ([]Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	convos := make([]Conversation, 0, len(s.convos))
	for _, convo := range s.convos {
		convos = append(convos, copyConversation(convo))
	}
	sort.Slice(convos, func(i, j int) bool {
		return convos[i].UpdatedAt.After(convos[j].UpdatedAt)
	})
	return convos, nil
}

// Exists checks whether a conversation ID is known.
func (s *InMemoryStorage) Exists(ctx context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.convos[id]
	return ok, nil
}

// copyConversation clones message slices to avoid external mutations.
func copyConversation(convo Conversation) Conversation {
	copied := convo
	copied.Messages = make([]llm.ChatMessage, len(convo.Messages))
	copy(copied.Messages, convo.Messages)
	return copied
}

// Verify InMemoryStorage implements ConversationStorage
var _ ConversationStorage = (*InMemoryStorage)(nil)
