package store

import (
	"context"
	"errors"
)

// ErrStoreUnavailable reports that the backing store could not be reached.
var ErrStoreUnavailable = errors.New("store unavailable")

// Store is the key-value store the ledgers are built on.
//
// Each operation is independently atomic per key; there is no multi-key
// transaction and no compare-and-swap. Callers that read-then-write the
// same key concurrently can lose updates (see DESIGN.md).
type Store interface {
	// Get returns the value at key. ok is false when the key does not exist.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set writes value at key, overwriting any previous value.
	Set(ctx context.Context, key string, value string) error
	// Close releases the underlying connection.
	Close() error
}

// InitStore picks a Store implementation from configuration: Redis when a
// Redis URL is set, otherwise the SQL fallback.
func InitStore(redisURL, databaseURL string) (Store, error) {
	if redisURL != "" {
		return NewRedisStore(redisURL)
	}
	return NewGormStore(databaseURL)
}
