package storage

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"portal-hq/chronicle/pkg/actions"
)

// newTestSQLiteStorage creates a SQLite storage backed by a temp file.
func newTestSQLiteStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	cfg := DefaultSQLiteConfig()
	cfg.Path = filepath.Join(t.TempDir(), "actions.db")

	storage, err := NewSQLiteStorage(cfg)
	if err != nil {
		t.Fatalf("NewSQLiteStorage() failed: %v", err)
	}
	t.Cleanup(func() { storage.Close() })

	return storage
}

// TestSQLiteStorage_InsertAndQuery tests the round trip through the database.
func TestSQLiteStorage_InsertAndQuery(t *testing.T) {
	storage := newTestSQLiteStorage(t)
	ctx := context.Background()

	payload := json.RawMessage(`{"type":"settings_change","field":"language","value":"de"}`)
	stored, err := storage.Insert(ctx, &actions.ActionRecord{
		UserID:    "alice",
		CreatedAt: time.Now().Add(-time.Hour),
		Payload:   payload,
	})
	if err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}
	if stored.ID == "" {
		t.Error("Expected Insert() to assign an ID")
	}

	results, err := storage.Query(ctx, &actions.Query{UserID: "alice"})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(results))
	}
	if string(results[0].Payload) != string(payload) {
		t.Errorf("Expected payload %s, got %s", payload, results[0].Payload)
	}
	if results[0].UserID != "alice" {
		t.Errorf("Expected user alice, got %s", results[0].UserID)
	}
}

// TestSQLiteStorage_QueryOrderingAndPaging tests descending order with
// limit and offset.
func TestSQLiteStorage_QueryOrderingAndPaging(t *testing.T) {
	storage := newTestSQLiteStorage(t)
	ctx := context.Background()

	now := time.Now().UTC()
	for i := 1; i <= 5; i++ {
		_, err := storage.Insert(ctx, &actions.ActionRecord{
			UserID:    "alice",
			CreatedAt: now.Add(-time.Duration(i) * time.Hour),
			Payload:   json.RawMessage(`{}`),
		})
		if err != nil {
			t.Fatalf("Insert() failed: %v", err)
		}
	}

	results, err := storage.Query(ctx, &actions.Query{UserID: "alice", Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(results))
	}
	// Second and third newest: ages 2h and 3h
	if !results[0].CreatedAt.After(results[1].CreatedAt) {
		t.Error("Expected descending CreatedAt order")
	}
}

// TestSQLiteStorage_WindowFilter tests the inclusive lower bound filter.
func TestSQLiteStorage_WindowFilter(t *testing.T) {
	storage := newTestSQLiteStorage(t)
	ctx := context.Background()

	now := time.Now().UTC()
	for _, age := range []time.Duration{time.Hour, 4 * time.Hour, 8 * time.Hour} {
		_, err := storage.Insert(ctx, &actions.ActionRecord{
			UserID:    "alice",
			CreatedAt: now.Add(-age),
			Payload:   json.RawMessage(`{}`),
		})
		if err != nil {
			t.Fatalf("Insert() failed: %v", err)
		}
	}

	after := now.Add(-6 * time.Hour)
	count, err := storage.Count(ctx, &actions.Query{UserID: "alice", After: &after})
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 records inside window, got %d", count)
	}
}

// TestSQLiteStorage_DeleteBefore tests user-scoped and global deletion.
func TestSQLiteStorage_DeleteBefore(t *testing.T) {
	storage := newTestSQLiteStorage(t)
	ctx := context.Background()

	now := time.Now().UTC()
	for _, user := range []string{"alice", "bob"} {
		for _, age := range []time.Duration{time.Hour, 10 * time.Hour} {
			_, err := storage.Insert(ctx, &actions.ActionRecord{
				UserID:    user,
				CreatedAt: now.Add(-age),
				Payload:   json.RawMessage(`{}`),
			})
			if err != nil {
				t.Fatalf("Insert() failed: %v", err)
			}
		}
	}

	deleted, err := storage.DeleteBefore(ctx, "alice", now.Add(-5*time.Hour))
	if err != nil {
		t.Fatalf("DeleteBefore() failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("Expected 1 record deleted, got %d", deleted)
	}

	count, err := storage.Count(ctx, &actions.Query{UserID: "bob"})
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected bob untouched with 2 records, got %d", count)
	}

	// Deleting again with the same cutoff removes nothing more for alice
	deleted, err = storage.DeleteBefore(ctx, "alice", now.Add(-5*time.Hour))
	if err != nil {
		t.Fatalf("DeleteBefore() failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("Expected repeat delete to remove 0 records, got %d", deleted)
	}
}

// TestSQLiteStorage_SchemaReopen tests that an existing database file is
// reopened against the same schema version.
func TestSQLiteStorage_SchemaReopen(t *testing.T) {
	cfg := DefaultSQLiteConfig()
	cfg.Path = filepath.Join(t.TempDir(), "actions.db")

	storage, err := NewSQLiteStorage(cfg)
	if err != nil {
		t.Fatalf("NewSQLiteStorage() failed: %v", err)
	}

	ctx := context.Background()
	if _, err := storage.Insert(ctx, &actions.ActionRecord{
		UserID:    "alice",
		CreatedAt: time.Now(),
		Payload:   json.RawMessage(`{}`),
	}); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}
	if err := storage.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	reopened, err := NewSQLiteStorage(cfg)
	if err != nil {
		t.Fatalf("NewSQLiteStorage() reopen failed: %v", err)
	}
	defer reopened.Close()

	count, err := reopened.Count(ctx, &actions.Query{})
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 record after reopen, got %d", count)
	}
}
