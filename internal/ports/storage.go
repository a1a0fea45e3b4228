package ports

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by KeyValueStore.Get when nothing is stored under
// the requested key.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is the durable storage contract used by the builder and theme
// stores. Each key holds one opaque document. Implementations must respect ctx
// cancellation and be safe for concurrent use.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
