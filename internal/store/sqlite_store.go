package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"wtime/internal/domain"
)

const kvSchema = `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at INTEGER NOT NULL DEFAULT (strftime('%s','now'))
)`

// SQLiteByteStore keeps blobs in a single SQLite key/value table.
type SQLiteByteStore struct {
	db *sql.DB
}

// OpenSQLiteByteStore creates or opens the database at path.
//
// The database is configured with:
//   - WAL mode
//   - 5-second busy timeout
//   - a single connection, since SQLite allows one writer
func OpenSQLiteByteStore(path string) (*SQLiteByteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = FULL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(kvSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &SQLiteByteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteByteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteByteStore) Get(ctx context.Context, key domain.StorageKey) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key.String()).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteByteStore) Set(ctx context.Context, key domain.StorageKey, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO kv (key, value, updated_at) VALUES (?, ?, strftime('%s','now'))
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key.String(), value)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteByteStore) Delete(ctx context.Context, key domain.StorageKey) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key.String()); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Compile-time assertion that SQLiteByteStore implements domain.ByteStore.
var _ domain.ByteStore = (*SQLiteByteStore)(nil)
