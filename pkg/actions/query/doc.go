// Package query implements the windowed, paginated list operations over
// the action store.
//
// # Window Semantics
//
// Every list operation filters on a time window whose lower bound is
// now − showLastHours. A negative showLastHours pushes the bound into
// the future, which can exclude every existing record; the engine does
// not treat this as an error.
//
// # Paging Semantics
//
// The caller-facing page number is 1-based and translates to a
// zero-based storage offset of (page−1)×pageSize. A page below 1 is a
// validation error rejected before the store is touched. The page size
// falls back to a configured default when unset and is capped by a
// configured maximum.
//
// # Counting
//
// Result.TotalCount is the aggregate number of records matching the
// window, computed with Storage.Count, independent of the returned
// page's length.
package query
