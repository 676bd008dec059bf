package storage

import (
	"context"
	"io"
)

// Storage persists binary content under opaque, caller-chosen paths.
// Delete is delete-if-exists: removing a missing object is not an error.
type Storage interface {
	Save(ctx context.Context, path string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}
