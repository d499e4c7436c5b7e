package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLiteStateStore keeps state blobs in a local SQLite file.
type SQLiteStateStore struct {
	db *sql.DB
}

func NewSQLiteStateStore(db *sql.DB) *SQLiteStateStore {
	return &SQLiteStateStore{db: db}
}

// EnsureSchema creates the app_state table when missing.
func (r *SQLiteStateStore) EnsureSchema(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS app_state (
               key        TEXT PRIMARY KEY,
               value      TEXT NOT NULL,
               updated_at TEXT NOT NULL
           )`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("error creating app_state table: %w", err)
	}
	return nil
}

func (r *SQLiteStateStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM app_state WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStateNotFound
		}
		return nil, fmt.Errorf("error getting state %q: %w", key, err)
	}
	return []byte(value), nil
}

func (r *SQLiteStateStore) Put(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO app_state (key, value, updated_at)
               VALUES (?, ?, datetime('now'))
               ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("error saving state %q: %w", key, err)
	}
	return nil
}
