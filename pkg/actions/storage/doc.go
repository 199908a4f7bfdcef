// Package storage provides the storage backends for action records.
//
// Two implementations of the actions.Storage interface are available:
//
//   - SQLiteStorage: production backend backed by a SQLite database
//     with WAL mode, a connection pool, and a versioned schema
//   - MemoryStorage: in-memory map for tests
//
// # SQLite Backend
//
//	store, err := storage.NewSQLiteStorage(&storage.SQLiteConfig{
//	    Path:    "data/actions.db",
//	    WALMode: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
// Timestamps are normalized to UTC before they reach the database so
// that window and retention comparisons are timezone-independent.
//
// # Ordering and Paging
//
// Query always returns records ordered by created_at descending (newest
// first). Limit and Offset page through that ordering; Count ignores
// them and reports the aggregate across all pages.
package storage
