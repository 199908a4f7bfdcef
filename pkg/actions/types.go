package actions

import (
	"context"
	"encoding/json"
	"time"
)

// ActionRecord is a single user action event. Records are immutable once
// stored; deletion is the only mutation path.
type ActionRecord struct {
	// ID is assigned by the storage backend at insert time.
	ID string `json:"id"`

	// UserID is the owner of the record. Set at creation, never changed.
	UserID string `json:"user_id"`

	// CreatedAt is supplied by the creator and is not necessarily the
	// insert time. It drives both list ordering and retention.
	CreatedAt time.Time `json:"created_at"`

	// Payload is an opaque JSON document. The engine never inspects it and
	// returns it byte-for-byte as it was stored.
	Payload json.RawMessage `json:"payload"`
}

// Query defines filter and paging parameters for querying action records.
type Query struct {
	// UserID filters records by owner. Empty means all users.
	UserID string `json:"user_id,omitempty"`

	// After is the inclusive lower bound on CreatedAt. Nil means no bound.
	After *time.Time `json:"after,omitempty"`

	// Limit is the maximum number of records to return. 0 means no limit.
	Limit int `json:"limit,omitempty"`

	// Offset skips the first N matching records.
	Offset int `json:"offset,omitempty"`
}

// Storage defines the interface for action record storage backends.
// Implementations must be safe for concurrent use; each operation is
// atomic on its own, no cross-operation transactions are assumed.
type Storage interface {
	// Insert persists a record and assigns its ID.
	// The returned record carries the assigned ID.
	Insert(ctx context.Context, record *ActionRecord) (*ActionRecord, error)

	// Query retrieves records matching the query, ordered by CreatedAt
	// descending. Returns an empty slice if nothing matches.
	Query(ctx context.Context, query *Query) ([]*ActionRecord, error)

	// Count returns the number of records matching the query,
	// ignoring Limit and Offset.
	Count(ctx context.Context, query *Query) (int64, error)

	// DeleteBefore removes records with CreatedAt strictly before cutoff.
	// An empty userID deletes across all users. Returns the number of
	// records removed.
	DeleteBefore(ctx context.Context, userID string, cutoff time.Time) (int64, error)

	// Close releases any resources held by the backend.
	Close() error
}
