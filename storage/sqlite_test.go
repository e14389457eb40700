package storage

import (
	"context"
	"testing"
	"time"

	"github.com/hussain-wac/chatfreegpt-rewamp/llm"
)

func newTestSqlite(t *testing.T) *SqliteStorage {
	t.Helper()
	storage, err := NewSqliteInMemory()
	if err != nil {
		t.Fatalf("NewSqliteInMemory failed: %v", err)
	}
	t.Cleanup(func() { storage.Close() })
	return storage
}

func TestSqliteSaveAndLoad(t *testing.T) {
	storage := newTestSqlite(t)
	ctx := context.Background()

	convo := NewConversation("sqlite roundtrip")
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
	if loaded.Title != "sqlite roundtrip" {
		t.Errorf("title = '%s'", loaded.Title)
	}
	if len(loaded.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(loaded.Messages))
	}
	if loaded.Messages[1].Role != "assistant" || loaded.Messages[1].Content != "Hi there" {
		t.Errorf("message order or content wrong: %+v", loaded.Messages)
	}
}

func TestSqliteSaveReplacesMessages(t *testing.T) {
	storage := newTestSqlite(t)
	ctx := context.Background()

	convo := NewConversation("replace")
	convo.Messages = []llm.ChatMessage{
		{Role: "user", Content: "one"},
		{Role: "assistant", Content: "two"},
	}
	if err := storage.Save(ctx, convo); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}

	convo.Messages = []llm.ChatMessage{{Role: "user", Content: "only"}}
	convo.UpdatedAt = time.Now().UTC()
	if err := storage.Save(ctx, convo); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	loaded, _, err := storage.Load(ctx, convo.ID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded.Messages) != 1 || loaded.Messages[0].Content != "only" {
		t.Errorf("Save must replace history, got %+v", loaded.Messages)
	}
}

func TestSqliteLoadNonexistent(t *testing.T) {
	storage := newTestSqlite(t)

	_, found, err := storage.Load(context.Background(), "nonexistent")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if found {
		t.Error("unknown ID must report found=false")
	}
}

func TestSqliteDelete(t *testing.T) {
	storage := newTestSqlite(t)
	ctx := context.Background()

	convo := NewConversation("doomed")
	convo.Messages = []llm.ChatMessage{{Role: "user", Content: "bye"}}
	if err := storage.Save(ctx, convo); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := storage.Delete(ctx, convo.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	exists, err := storage.Exists(ctx, convo.ID)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("conversation must be gone after Delete")
	}
}

func TestSqliteListOrder(t *testing.T) {
	storage := newTestSqlite(t)
	ctx := context.Background()

	older := NewConversation("older")
	older.UpdatedAt = time.Now().Add(-time.Hour).UTC()
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
