// Package store defines the key-value persistent store the game state lives
// in, with a file backend (one JSON document per key) and a PostgreSQL
// backend in the postgres subpackage.
package store

import (
	"context"

	"github.com/thclabs/growroom/internal/domain"
)

// ErrKeyNotFound is returned by Get when the key has never been written.
var ErrKeyNotFound = domain.ErrKeyNotFound

// Store is a small persistent key-value interface. Values are opaque bytes;
// callers own the encoding.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Keys returns all keys with the given prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}
