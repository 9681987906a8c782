package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/ports"
)

// FileStore implements ports.KeyValueStore with one JSON file per key.
// Every access holds an OS file lock so the CLI and the SSH dashboard
// never observe a half-written document.
type FileStore struct {
	dir string
}

var _ ports.KeyValueStore = (*FileStore)(nil)

// NewFileStore creates the directory if needed
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Close is a no-op; files are opened per operation
func (s *FileStore) Close() error {
	return nil
}

// Get implements ports.KeyValueStore.Get
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", key, domain.ErrKeyNotFound)
		}
		return nil, fmt.Errorf("failed to open %s: %w", key, err)
	}
	defer file.Close()

	if err := lockFile(file, false); err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	defer unlockFile(file)

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Put implements ports.KeyValueStore.Put
func (s *FileStore) Put(ctx context.Context, key string, value []byte) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", key, err)
	}
	defer file.Close()

	if err := lockFile(file, true); err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	defer unlockFile(file)

	if err := file.Truncate(0); err != nil {
		return fmt.Errorf("failed to truncate file: %w", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		return fmt.Errorf("failed to seek to beginning: %w", err)
	}
	if _, err := file.Write(value); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return file.Sync()
}

// Delete implements ports.KeyValueStore.Delete. Deleting an absent key is not an error.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) pathFor(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}
