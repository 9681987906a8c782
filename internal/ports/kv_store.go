package ports

import "context"

// KeyValueStore persists opaque JSON documents under string keys.
// Get returns domain.ErrKeyNotFound when the key is absent.
type KeyValueStore interface {
	Close() error
	Delete(ctx context.Context, key string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}
