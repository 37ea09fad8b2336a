package artifact

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store is an abstraction for reading and writing immutable blobs by key.
// Keys use forward slashes regardless of platform.
type Store interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Put writes a blob atomically, replacing any previous content.
	Put(ctx context.Context, key string, data []byte) error
	// List returns all keys with the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}
