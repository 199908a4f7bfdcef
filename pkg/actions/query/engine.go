package query

import (
	"context"
	"log/slog"
	"time"

	"portal-hq/chronicle/pkg/actions"
)

// Config contains configuration for the query engine.
type Config struct {
	// DefaultPageSize is used when the caller does not specify a page size.
	// Default: 10
	DefaultPageSize int

	// MaxPageSize caps the caller-supplied page size.
	// Default: 100
	MaxPageSize int
}

// DefaultConfig returns the default query engine configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultPageSize: 10,
		MaxPageSize:     100,
	}
}

// Result is the outcome of a list operation: one page of records plus the
// aggregate count of all records matching the window.
type Result struct {
	// Records is the requested page, ordered by CreatedAt descending.
	Records []*actions.ActionRecord

	// TotalCount is the number of records matching the window across all
	// pages, not just the returned page.
	TotalCount int64
}

// Engine computes time windows and page slices over the action store.
type Engine struct {
	storage actions.Storage
	config  *Config
	logger  *slog.Logger
	now     func() time.Time
}

// NewEngine creates a new query engine on top of the given storage backend.
func NewEngine(storage actions.Storage, config *Config) *Engine {
	if config == nil {
		config = DefaultConfig()
	}

	return &Engine{
		storage: storage,
		config:  config,
		logger:  slog.Default().With("component", "actions.query"),
		now:     time.Now,
	}
}

// ListForUser returns one page of the user's records whose CreatedAt falls
// within the last showLastHours hours.
//
// page is 1-based; pages at or below zero are rejected as validation
// errors before any storage access. showLastHours may be negative, which
// shifts the window lower bound into the future and excludes records
// accordingly. That is plain arithmetic, not a special case.
func (e *Engine) ListForUser(ctx context.Context, userID string, page, pageSize, showLastHours int) (*Result, error) {
	return e.list(ctx, userID, page, pageSize, showLastHours)
}

// ListAll is ListForUser without the ownership filter: a global view across
// all users, intended for the operator-facing endpoint.
func (e *Engine) ListAll(ctx context.Context, page, pageSize, showLastHours int) (*Result, error) {
	return e.list(ctx, "", page, pageSize, showLastHours)
}

func (e *Engine) list(ctx context.Context, userID string, page, pageSize, showLastHours int) (*Result, error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}
	pageSize = e.normalizePageSize(pageSize)

	after := e.now().UTC().Add(-time.Duration(showLastHours) * time.Hour)
	q := &actions.Query{
		UserID: userID,
		After:  &after,
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	}

	records, err := e.storage.Query(ctx, q)
	if err != nil {
		return nil, err
	}

	if len(records) == 0 && page == 1 {
		return &Result{Records: []*actions.ActionRecord{}, TotalCount: 0}, nil
	}

	total, err := e.storage.Count(ctx, q)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("list query executed",
		"user_id", userID,
		"page", page,
		"page_size", pageSize,
		"show_last_hours", showLastHours,
		"returned", len(records),
		"total", total,
	)

	return &Result{Records: records, TotalCount: total}, nil
}

// normalizePageSize applies the configured default and cap.
func (e *Engine) normalizePageSize(pageSize int) int {
	if pageSize <= 0 {
		return e.config.DefaultPageSize
	}
	if pageSize > e.config.MaxPageSize {
		return e.config.MaxPageSize
	}
	return pageSize
}

// validatePage rejects pages that would translate to a negative offset.
func validatePage(page int) error {
	if page < 1 {
		return actions.NewValidationError("page", "page must be >= 1")
	}
	return nil
}
