package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kopikita/blogshop/internal/domain"
	"github.com/kopikita/blogshop/internal/storage"
)

// FSBackend is a file system implementation of the storage.Backend interface.
// Keys are slash-separated relative paths under BaseDir, e.g. "posts/abc.jpg".
type FSBackend struct {
	baseDir string
}

// Config options for the file system backend
type Config struct {
	BaseDir string // Base directory for storing files
}

// NewFSBackend creates a new file system storage backend
func NewFSBackend(config Config) (storage.Backend, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}

	if err := os.MkdirAll(config.BaseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &FSBackend{baseDir: config.BaseDir}, nil
}

// Upload writes blob content to the file system
func (b *FSBackend) Upload(ctx context.Context, key string, reader io.Reader) error {
	filePath := filepath.Join(b.baseDir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Download reads blob content from the file system
func (b *FSBackend) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	filePath := filepath.Join(b.baseDir, filepath.FromSlash(key))

	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrBlobNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// Delete removes a blob from the file system
func (b *FSBackend) Delete(ctx context.Context, key string) error {
	filePath := filepath.Join(b.baseDir, filepath.FromSlash(key))

	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return domain.ErrBlobNotFound
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// Exists reports whether a blob is present in the file system
func (b *FSBackend) Exists(ctx context.Context, key string) (bool, error) {
	filePath := filepath.Join(b.baseDir, filepath.FromSlash(key))

	if _, err := os.Stat(filePath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
