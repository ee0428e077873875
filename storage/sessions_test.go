package storage

import (
	"testing"
	"time"
)

func TestSessionStorageSaveLoad(t *testing.T) {
	storage, err := NewSessionStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewSessionStorage: %v", err)
	}

	session := &Session{
		Name:     "crypto chat",
		Provider: "openai",
		Model:    "gpt-4o",
		Messages: []Message{
			{Role: "user", Content: "price of btc?", Timestamp: time.Now()},
			{Role: "assistant", Name: "get_crypto_price", Content: "[Price of BTC = 69000]", Timestamp: time.Now()},
		},
	}

	if err := storage.Save(session); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if session.ID == "" {
		t.Fatal("expected Save to assign an ID")
	}
	if session.UpdatedAt.IsZero() || session.CreatedAt.IsZero() {
		t.Error("expected Save to stamp timestamps")
	}

	loaded, err := storage.Load(session.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Name != "crypto chat" {
		t.Errorf("expected name to round-trip, got %q", loaded.Name)
	}
	if len(loaded.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(loaded.Messages))
	}
	if loaded.Messages[1].Name != "get_crypto_price" {
		t.Errorf("expected tool name tag to round-trip, got %q", loaded.Messages[1].Name)
	}
	if loaded.Messages[1].Content != "[Price of BTC = 69000]" {
		t.Errorf("expected summary content to round-trip, got %q", loaded.Messages[1].Content)
	}
}

func TestSessionStorageListNewestFirst(t *testing.T) {
	storage, err := NewSessionStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewSessionStorage: %v", err)
	}

	first := &Session{Name: "first"}
	if err := storage.Save(first); err != nil {
		t.Fatalf("Save first: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	second := &Session{Name: "second"}
	if err := storage.Save(second); err != nil {
		t.Fatalf("Save second: %v", err)
	}

	list, err := storage.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(list))
	}
	if list[0].Name != "second" {
		t.Errorf("expected newest first, got %q", list[0].Name)
	}

	last, err := storage.LoadLast()
	if err != nil {
		t.Fatalf("LoadLast: %v", err)
	}
	if last.Name != "second" {
		t.Errorf("expected LoadLast to return the newest session, got %q", last.Name)
	}
}

func TestSessionStorageLoadLastEmpty(t *testing.T) {
	storage, err := NewSessionStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewSessionStorage: %v", err)
	}

	last, err := storage.LoadLast()
	if err != nil {
		t.Fatalf("LoadLast: %v", err)
	}
	if last != nil {
		t.Errorf("expected nil for empty storage, got %+v", last)
	}
}

func TestSessionStorageDelete(t *testing.T) {
	storage, err := NewSessionStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewSessionStorage: %v", err)
	}

	session := &Session{Name: "doomed"}
	if err := storage.Save(session); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := storage.Delete(session.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := storage.Load(session.ID); err == nil {
		t.Error("expected Load to fail after Delete")
	}
}

func TestSearchIndex(t *testing.T) {
	storage, err := NewSessionStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewSessionStorage: %v", err)
	}

	session := &Session{
		Name: "crypto chat",
		Messages: []Message{
			{Role: "user", Content: "what is the price of bitcoin", Timestamp: time.Now()},
			{Role: "system", Content: "bitcoin internal note", Timestamp: time.Now()},
			{Role: "assistant", Content: "[Price of BTC = 69000]", Timestamp: time.Now()},
		},
	}
	if err := storage.Save(session); err != nil {
		t.Fatalf("Save: %v", err)
	}

	index := NewSearchIndex(storage)

	results, err := index.SearchAllSessions("bitcoin")
	if err != nil {
		t.Fatalf("SearchAllSessions: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 match (system messages excluded), got %d", len(results))
	}
	if results[0].SessionID != session.ID {
		t.Errorf("expected session ID %q, got %q", session.ID, results[0].SessionID)
	}
	if results[0].Role != "user" {
		t.Errorf("expected the user message to match, got role %q", results[0].Role)
	}

	empty, err := index.SearchAllSessions("")
	if err != nil {
		t.Fatalf("SearchAllSessions empty query: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no matches for empty query, got %d", len(empty))
	}
}
