package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stateStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

func exerciseStateStore(t *testing.T, store stateStore) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrStateNotFound)

	require.NoError(t, store.Put(ctx, "ambientValidationState", []byte(`{"todayCount":1}`)))
	got, err := store.Get(ctx, "ambientValidationState")
	require.NoError(t, err)
	assert.JSONEq(t, `{"todayCount":1}`, string(got))

	// Overwrite keeps a single value per key.
	require.NoError(t, store.Put(ctx, "ambientValidationState", []byte(`{"todayCount":2}`)))
	got, err = store.Get(ctx, "ambientValidationState")
	require.NoError(t, err)
	assert.JSONEq(t, `{"todayCount":2}`, string(got))

	// Values are opaque, not required to be JSON.
	require.NoError(t, store.Put(ctx, "other", []byte("not json")))
	got, err = store.Get(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, "not json", string(got))
}

func TestFileStateStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	exerciseStateStore(t, NewFileStateStore(path))

	// A second instance sees what the first wrote.
	got, err := NewFileStateStore(path).Get(context.Background(), "ambientValidationState")
	require.NoError(t, err)
	assert.JSONEq(t, `{"todayCount":2}`, string(got))
}

func TestFileStateStore_CorruptFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))

	store := NewFileStateStore(path)
	_, err := store.Get(context.Background(), "ambientValidationState")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrStateNotFound)
}

func TestFileStateStore_PutRecoversFromCorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))

	store := NewFileStateStore(path)
	require.NoError(t, store.Put(ctx, "ambientValidationState", []byte(`{"todayCount":1}`)))

	got, err := store.Get(ctx, "ambientValidationState")
	require.NoError(t, err)
	assert.JSONEq(t, `{"todayCount":1}`, string(got))

	quarantined, err := os.ReadFile(path + ".corrupt")
	require.NoError(t, err)
	assert.Equal(t, "{broken", string(quarantined))
}

func TestFileStateStore_EmptyFileIsNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	_, err := NewFileStateStore(path).Get(context.Background(), "ambientValidationState")
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestSQLiteStateStore(t *testing.T) {
	db, err := NewSQLiteConnection(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := NewSQLiteStateStore(db)
	require.NoError(t, store.EnsureSchema(context.Background()))
	// Idempotent.
	require.NoError(t, store.EnsureSchema(context.Background()))

	exerciseStateStore(t, store)
}

func TestPostgresStateStore(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := NewPostgresConnection(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := NewPostgresStateStore(db)
	require.NoError(t, store.EnsureSchema(context.Background()))
	_, err = db.Exec(`DELETE FROM app_state WHERE key IN ('missing', 'ambientValidationState', 'other')`)
	require.NoError(t, err)

	exerciseStateStore(t, store)
}
