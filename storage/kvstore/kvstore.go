// Package kvstore provides a minimal key/value contract for serialized JSON
// documents, with in-memory, file-backed and redis-backed implementations.
package kvstore

import (
	"context"

	"github.com/pkg/errors"
)

var (
	// ErrKeyNotFound is returned by Get when no document is stored under the key.
	ErrKeyNotFound = errors.New("key not found")

	// ErrMalformed is returned by Get when the stored document cannot be decoded.
	ErrMalformed = errors.New("malformed stored document")
)

// Store persists one serialized JSON document per key. Set rewrites the whole
// document; there is no partial update.
type Store interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
}
