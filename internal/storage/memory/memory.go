package memory

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/kopikita/blogshop/internal/domain"
	"github.com/kopikita/blogshop/internal/storage"
)

// MemoryBackend is an in-memory implementation of the storage.Backend interface
type MemoryBackend struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryBackend creates a new in-memory storage backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		blobs: make(map[string][]byte),
	}
}

var _ storage.Backend = (*MemoryBackend)(nil)

// Upload writes blob content
func (b *MemoryBackend) Upload(ctx context.Context, key string, reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.blobs[key] = data
	return nil
}

// Download reads blob content
func (b *MemoryBackend) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.blobs[key]
	if !exists {
		return nil, domain.ErrBlobNotFound
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

// Delete removes a blob
func (b *MemoryBackend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.blobs[key]; !exists {
		return domain.ErrBlobNotFound
	}

	delete(b.blobs, key)
	return nil
}

// Exists reports whether a blob is present
func (b *MemoryBackend) Exists(ctx context.Context, key string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, exists := b.blobs[key]
	return exists, nil
}

// Keys returns all stored blob keys. Intended for tests.
func (b *MemoryBackend) Keys() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	keys := make([]string, 0, len(b.blobs))
	for k := range b.blobs {
		keys = append(keys, k)
	}
	return keys
}
