// Package storage provides the persistent key-value store the client keeps
// its session and trip-planning state in. The interface mirrors the flat
// string-keyed storage the web client uses: no transactions, no cross-key
// guarantees, last write wins.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no persisted value.
var ErrNotFound = errors.New("storage: key not found")

// Store is a flat key-value store for client-side state.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
