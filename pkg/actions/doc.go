// Package actions defines the core types for the user action history
// service: the ActionRecord entity, the Query filter, the Storage
// interface implemented by the backends in pkg/actions/storage, and the
// error taxonomy shared across the query and retention layers.
//
// # Data Model
//
// An ActionRecord ties one opaque JSON payload to a user and a
// creator-supplied timestamp:
//
//	record := &actions.ActionRecord{
//	    UserID:    "u1",
//	    CreatedAt: time.Now().UTC(),
//	    Payload:   json.RawMessage(`{"type":"instantiation"}`),
//	}
//
// The payload is cargo: it is stored and returned byte-for-byte and is
// never inspected by any layer of this service.
//
// # Storage Contract
//
// Storage is deliberately narrow: insert, windowed query with
// ordering and paging, aggregate count, and predicate delete. The
// concrete engine (SQLite in production, an in-memory map in tests) is
// an implementation detail behind this interface.
//
// # Errors
//
// Three wrapper types cover the failure classes that cross package
// boundaries:
//
//   - StorageError: backend faults, surfaced as 5xx
//   - ValidationError: malformed client input, surfaced as 4xx
//   - RetentionError: sweep failures, logged and counted
//
// All wrappers support errors.As and Unwrap.
package actions
