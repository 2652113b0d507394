package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

var (
	// ErrTooLarge - поток оказался больше лимита, файл не сохранен
	ErrTooLarge = errors.New("file exceeds size limit")
	// ErrInvalidPath - путь выходит за пределы корня хранилища
	ErrInvalidPath = errors.New("invalid storage path")
	ErrNotFound    = errors.New("file not found")
)

// Storage defines the interface for file storage operations.
// Paths are slash-separated and relative to the storage root ("image/123-a.png").
type Storage interface {
	// Save stores the stream at path. limit > 0 caps the number of bytes;
	// a larger stream returns ErrTooLarge and leaves nothing behind.
	Save(ctx context.Context, path string, reader io.Reader, limit int64) (int64, error)

	// Open returns the file for reading
	Open(ctx context.Context, path string) (io.ReadSeekCloser, error)

	// Delete removes a file; a missing file is not an error
	Delete(ctx context.Context, path string) error

	// Stat returns size and modification time; a missing file is ErrNotFound
	Stat(ctx context.Context, path string) (FileInfo, error)

	// GetURL returns the public path of the file ("/uploads/image/123-a.png")
	GetURL(path string) string

	// List returns every stored file path
	List(ctx context.Context) ([]string, error)
}

type FileInfo struct {
	Size    int64
	ModTime time.Time
}

// Config holds storage configuration
type Config struct {
	Type      string // local
	BasePath  string // root directory on disk
	URLPrefix string // public prefix, "/uploads"
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalStorage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
