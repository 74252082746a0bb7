// Package storage implements the durable key-value store backing the
// encrypted persistence layer. Values are opaque byte blobs; the table is
// the local analogue of a browser's localStorage.
package storage

import "context"

// Repository is an opaque key-value store.
//
// Get returns (nil, nil) when the key is absent; storage I/O errors are
// returned as-is and are fatal to the operation attempting them.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
