package session

import "context"

// StateKey is the fixed key the session blob lives under.
const StateKey = "ambientValidationState"

// Store is a key-value store for opaque blobs.
// Get returns database.ErrStateNotFound for keys never written.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}
