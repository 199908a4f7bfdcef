package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"portal-hq/chronicle/pkg/actions"
)

// MemoryStorage implements the actions.Storage interface using an in-memory
// map. This implementation is intended for testing only and should not be
// used in production.
type MemoryStorage struct {
	records map[string]*actions.ActionRecord
	mu      sync.RWMutex
}

// NewMemoryStorage creates a new in-memory storage backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		records: make(map[string]*actions.ActionRecord),
	}
}

// Insert persists an action record to memory and assigns its ID.
func (s *MemoryStorage) Insert(ctx context.Context, record *actions.ActionRecord) (*actions.ActionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *record
	stored.ID = uuid.NewString()
	stored.Payload = append([]byte(nil), record.Payload...)
	s.records[stored.ID] = &stored

	out := stored
	return &out, nil
}

// Query retrieves action records matching the query filters, ordered by
// CreatedAt descending.
func (s *MemoryStorage) Query(ctx context.Context, query *actions.Query) ([]*actions.ActionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := []*actions.ActionRecord{}
	for _, record := range s.records {
		if matchesQuery(record, query) {
			recordCopy := *record
			results = append(results, &recordCopy)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})

	// Apply pagination
	start := query.Offset
	if start > len(results) {
		return []*actions.ActionRecord{}, nil
	}
	results = results[start:]

	if query.Limit > 0 && query.Limit < len(results) {
		results = results[:query.Limit]
	}

	return results, nil
}

// Count returns the number of action records matching the query filters.
func (s *MemoryStorage) Count(ctx context.Context, query *actions.Query) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, record := range s.records {
		if matchesQuery(record, query) {
			count++
		}
	}

	return count, nil
}

// DeleteBefore removes records with CreatedAt strictly before cutoff.
// An empty userID deletes across all users.
func (s *MemoryStorage) DeleteBefore(ctx context.Context, userID string, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, record := range s.records {
		if userID != "" && record.UserID != userID {
			continue
		}
		if record.CreatedAt.Before(cutoff) {
			delete(s.records, id)
			deleted++
		}
	}

	return deleted, nil
}

// Close releases resources held by the storage backend.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]*actions.ActionRecord)
	return nil
}

// matchesQuery checks if a record matches the query filters.
func matchesQuery(record *actions.ActionRecord, query *actions.Query) bool {
	if query.UserID != "" && record.UserID != query.UserID {
		return false
	}
	if query.After != nil && record.CreatedAt.Before(*query.After) {
		return false
	}
	return true
}

// Clear removes all records from storage (for testing).
func (s *MemoryStorage) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]*actions.ActionRecord)
}

// Size returns the number of records in storage (for testing).
func (s *MemoryStorage) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}
