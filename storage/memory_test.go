package storage

import (
	"context"
	"testing"
	"time"

	"github.com/hussain-wac/chatfreegpt-rewamp/llm"
)

func TestInMemoryStorageSaveAndLoad(t *testing.T) {
	storage := NewInMemoryStorage()
	ctx := context.Background()

	convo := NewConversation("greetings")
	convo.Messages = []llm.ChatMessage{
		{Role: "user", Content: "Hello"},
		{Role: "assistant", Content: "Hi there"},
	}

	if err := storage.Save(ctx, convo); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, found, err := storage.Load(ctx, convo.ID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !found {
		t.Fatal("expected conversation to be found")
	}

	if loaded.Title != "greetings" {
		t.Errorf("expected title 'greetings', got '%s'", loaded.Title)
	}
	if len(loaded.Messages) != 2 {
		t.Errorf("expected 2 messages, got %d", len(loaded.Messages))
	}
	if loaded.Messages[0].Content != "Hello" {
		t.Errorf("expected 'Hello', got '%s'", loaded.Messages[0].Content)
	}
}

func TestInMemoryStorageLoadNonexistent(t *testing.T) {
	storage := NewInMemoryStorage()

	_, found, err := storage.Load(context.Background(), "nonexistent")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if found {
		t.Error("unknown ID must report found=false")
	}
}

func TestInMemoryStorageDelete(t *testing.T) {
	storage := NewInMemoryStorage()
	ctx := context.Background()

	convo := NewConversation("temp")
	if err := storage.Save(ctx, convo); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	exists, err := storage.Exists(ctx, convo.ID)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected conversation to exist")
	}

	if err := storage.Delete(ctx, convo.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	exists, err = storage.Exists(ctx, convo.ID)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("expected conversation to be gone after Delete")
	}
}

func TestInMemoryStorageDeleteNonexistent(t *testing.T) {
	storage := NewInMemoryStorage()

	if err := storage.Delete(context.Background(), "nonexistent"); err != nil {
		t.Errorf("deleting unknown ID must not fail: %v", err)
	}
}

func TestInMemoryStorageListOrder(t *testing.T) {
	storage := NewInMemoryStorage()
	ctx := context.Background()

	older := NewConversation("older")
	older.UpdatedAt = time.Now().Add(-time.Hour)
	newer := NewConversation("newer")

	if err := storage.Save(ctx, older); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := storage.Save(ctx, newer); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	convos, err := storage.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(convos) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(convos))
	}
	if convos[0].Title != "newer" {
		t.Errorf("most recently updated must come first, got '%s'", convos[0].Title)
	}
}

func TestInMemoryStorageCopiesOnSaveAndLoad(t *testing.T) {
	storage := NewInMemoryStorage()
	ctx := context.Background()

	convo := NewConversation("isolation")
	convo.Messages = []llm.ChatMessage{{Role: "user", Content: "original"}}
	if err := storage.Save(ctx, convo); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Mutating the caller's slice must not affect stored data.
	convo.Messages[0].Content = "mutated after save"

	loaded, _, err := storage.Load(ctx, convo.ID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Messages[0].Content != "original" {
		t.Error("stored data must be isolated from caller mutations")
	}

	// Mutating the loaded slice must not affect stored data either.
	loaded.Messages[0].Content = "mutated after load"

	again, _, err := storage.Load(ctx, convo.ID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if again.Messages[0].Content != "original" {
		t.Error("loaded data must be a copy")
	}
}
