// Package storage provides the durable key/blob stores the persistence layer
// writes session state into. Blobs are opaque text (JSON at the call sites);
// backends never inspect them.
package storage

import (
	"context"
	"errors"
)

// Storage is a minimal key -> blob store. Each key is owned exclusively by
// one writer; there is no cross-key transaction.
//
// Consumers define this interface, not the backend implementations.
type Storage interface {
	// Load returns the blob stored under key, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save overwrites the blob stored under key.
	Save(ctx context.Context, key string, value []byte) error
	// Delete removes the key; deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

var ErrNotFound = errors.New("key not found")
