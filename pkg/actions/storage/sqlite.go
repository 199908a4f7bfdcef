package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"portal-hq/chronicle/pkg/actions"
)

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections to the database.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/actions.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStorage implements the actions.Storage interface using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage creates a new SQLite storage backend.
// It initializes the database schema and enables WAL mode if configured.
func NewSQLiteStorage(config *SQLiteConfig) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	logger := slog.Default().With("component", "actions.storage.sqlite")

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, actions.NewStorageError("sqlite", "open", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStorage{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite storage initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
		"max_open_conns", config.MaxOpenConns,
	)

	return s, nil
}

// initialize sets up the database schema and enables WAL mode.
func (s *SQLiteStorage) initialize() error {
	if s.config.WALMode {
		_, err := s.db.Exec("PRAGMA journal_mode=WAL;")
		if err != nil {
			return actions.NewStorageError("sqlite", "enable_wal", err)
		}
		s.logger.Debug("WAL mode enabled")
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	_, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs))
	if err != nil {
		return actions.NewStorageError("sqlite", "set_busy_timeout", err)
	}

	_, err = s.db.Exec(Schema)
	if err != nil {
		return actions.NewStorageError("sqlite", "create_schema", err)
	}

	_, err = s.db.Exec(InsertSchemaVersion, SchemaVersion)
	if err != nil {
		return actions.NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err = s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return actions.NewStorageError("sqlite", "get_schema_version", err)
	}

	if version != SchemaVersion {
		return actions.NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	s.logger.Debug("schema version verified", "version", version)

	return nil
}

// Insert persists an action record and assigns its ID.
func (s *SQLiteStorage) Insert(ctx context.Context, record *actions.ActionRecord) (*actions.ActionRecord, error) {
	stored := *record
	stored.ID = uuid.NewString()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO actions (id, user_id, created_at, payload) VALUES (?, ?, ?, ?)`,
		stored.ID, stored.UserID, stored.CreatedAt.UTC(), string(stored.Payload),
	)
	if err != nil {
		return nil, actions.NewStorageError("sqlite", "insert", err)
	}

	return &stored, nil
}

// Query retrieves action records matching the query filters, ordered by
// created_at descending.
func (s *SQLiteStorage) Query(ctx context.Context, query *actions.Query) ([]*actions.ActionRecord, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "SELECT id, user_id, created_at, payload FROM actions"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}
	sqlQuery += " ORDER BY created_at DESC"

	if query.Limit > 0 {
		sqlQuery += fmt.Sprintf(" LIMIT %d", query.Limit)
	}
	if query.Offset > 0 {
		if query.Limit <= 0 {
			// SQLite requires a LIMIT clause before OFFSET.
			sqlQuery += " LIMIT -1"
		}
		sqlQuery += fmt.Sprintf(" OFFSET %d", query.Offset)
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, actions.NewStorageError("sqlite", "query", err)
	}
	defer rows.Close()

	records := []*actions.ActionRecord{}
	for rows.Next() {
		record, err := scanRow(rows)
		if err != nil {
			return nil, actions.NewStorageError("sqlite", "scan", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, actions.NewStorageError("sqlite", "query", err)
	}

	return records, nil
}

// Count returns the number of action records matching the query filters.
func (s *SQLiteStorage) Count(ctx context.Context, query *actions.Query) (int64, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "SELECT COUNT(*) FROM actions"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	var count int64
	err := s.db.QueryRowContext(ctx, sqlQuery, args...).Scan(&count)
	if err != nil {
		return 0, actions.NewStorageError("sqlite", "count", err)
	}

	return count, nil
}

// DeleteBefore removes records with created_at strictly before cutoff.
// An empty userID deletes across all users.
func (s *SQLiteStorage) DeleteBefore(ctx context.Context, userID string, cutoff time.Time) (int64, error) {
	sqlQuery := "DELETE FROM actions WHERE created_at < ?"
	args := []interface{}{cutoff.UTC()}

	if userID != "" {
		sqlQuery += " AND user_id = ?"
		args = append(args, userID)
	}

	result, err := s.db.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return 0, actions.NewStorageError("sqlite", "delete", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, actions.NewStorageError("sqlite", "delete", err)
	}

	return count, nil
}

// Close releases resources held by the storage backend.
func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		return actions.NewStorageError("sqlite", "close", err)
	}

	s.logger.Info("SQLite storage closed")
	return nil
}

// buildWhereClause builds a SQL WHERE clause from query filters.
// Returns the WHERE clause (without "WHERE" keyword) and the query arguments.
func buildWhereClause(query *actions.Query) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if query.UserID != "" {
		conditions = append(conditions, "user_id = ?")
		args = append(args, query.UserID)
	}
	if query.After != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, query.After.UTC())
	}

	whereClause := ""
	for i, condition := range conditions {
		if i > 0 {
			whereClause += " AND "
		}
		whereClause += condition
	}

	return whereClause, args
}

// scanRow scans a database row into an ActionRecord.
func scanRow(rows *sql.Rows) (*actions.ActionRecord, error) {
	var record actions.ActionRecord
	var payload string

	if err := rows.Scan(&record.ID, &record.UserID, &record.CreatedAt, &payload); err != nil {
		return nil, err
	}

	record.Payload = []byte(payload)
	return &record, nil
}
