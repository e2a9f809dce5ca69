package storage

import (
	"context"
	"io"
)

// Backend defines the interface for blob storage backends
type Backend interface {
	// Upload writes blob content under the given key
	Upload(ctx context.Context, key string, reader io.Reader) error

	// Download reads blob content by key
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a blob by key
	Delete(ctx context.Context, key string) error

	// Exists reports whether a blob is present
	Exists(ctx context.Context, key string) (bool, error)
}
