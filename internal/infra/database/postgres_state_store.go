package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgresStateStore keeps state blobs in the app_state table.
type PostgresStateStore struct {
	db *sql.DB
}

func NewPostgresStateStore(db *sql.DB) *PostgresStateStore {
	return &PostgresStateStore{db: db}
}

// EnsureSchema creates the app_state table when missing.
func (r *PostgresStateStore) EnsureSchema(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS app_state (
               key        TEXT PRIMARY KEY,
               value      TEXT NOT NULL,
               updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
           )`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("error creating app_state table: %w", err)
	}
	return nil
}

func (r *PostgresStateStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM app_state WHERE key = $1`
	var value string
	err := r.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStateNotFound
		}
		return nil, fmt.Errorf("error getting state %q: %w", key, err)
	}
	return []byte(value), nil
}

func (r *PostgresStateStore) Put(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO app_state (key, value, updated_at)
               VALUES ($1, $2, NOW())
               ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
	if _, err := r.db.ExecContext(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("error saving state %q: %w", key, err)
	}
	return nil
}
