package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Disk stores objects on the local filesystem under a base directory.
// Used for local development when no MinIO endpoint is configured.
type Disk struct {
	baseDir string
}

func NewDisk(baseDir string) *Disk {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	return &Disk{baseDir: baseDir}
}

func (s *Disk) Save(ctx context.Context, path string, r io.Reader, size int64, contentType string) error {
	absPath := filepath.Join(s.baseDir, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return fmt.Errorf("create upload directory: %w", err)
	}

	dst, err := os.Create(absPath)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		_ = os.Remove(absPath)
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func (s *Disk) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.baseDir, filepath.FromSlash(path)))
	if err != nil {
		return nil, fmt.Errorf("open file %s: %w", path, err)
	}
	return f, nil
}

func (s *Disk) Delete(ctx context.Context, path string) error {
	err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(path)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file %s: %w", path, err)
	}
	return nil
}
