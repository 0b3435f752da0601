package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

const backendSQLite = "sqlite"

// Compile-time interface check.
var _ Store = (*SQLiteStore)(nil)

// SQLiteStore is a persistent Store backed by SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at the given path and
// initialises the schema. Use ":memory:" for an in-memory SQLite database.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", withPragmas(dsn))
	if err != nil {
		return nil, fmt.Errorf("store/sqlite: open: %w", err)
	}

	// SQLite allows a single writer. One connection also keeps ":memory:"
	// databases from being split across pooled connections.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS page_visits (
			page_id TEXT PRIMARY KEY,
			count   INTEGER NOT NULL DEFAULT 0
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("store/sqlite: create table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Increment atomically adds one to the counter for key. The upsert runs as a
// single statement, so no read-modify-write happens on the client side.
func (s *SQLiteStore) Increment(ctx context.Context, key string) (int64, error) {
	var count int64

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO page_visits (page_id, count) VALUES (?, 1)
		ON CONFLICT (page_id) DO UPDATE SET count = count + 1
		RETURNING count`, key,
	).Scan(&count)
	if err != nil {
		return 0, Unavailable(backendSQLite, "increment", key, err)
	}

	return count, nil
}

// Get returns the current counter value for key.
func (s *SQLiteStore) Get(ctx context.Context, key string) (int64, error) {
	var count int64

	err := s.db.QueryRowContext(ctx,
		`SELECT count FROM page_visits WHERE page_id = ?`, key,
	).Scan(&count)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, Unavailable(backendSQLite, "get", key, err)
	}

	return count, nil
}

// withPragmas adds a busy timeout and WAL journaling to dsn unless it already
// sets them. Writers sharing a database file wait up to 5s for the lock.
func withPragmas(dsn string) string {
	var pragmas []string
	if !strings.Contains(dsn, "busy_timeout") {
		pragmas = append(pragmas, "_pragma=busy_timeout(5000)")
	}
	if !strings.Contains(dsn, "journal_mode") {
		pragmas = append(pragmas, "_pragma=journal_mode(WAL)")
	}
	if len(pragmas) == 0 {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(pragmas, "&")
}

// Close closes the underlying SQLite database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
