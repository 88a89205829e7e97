// Package local persists the task collection as a single JSON blob under a
// fixed key, the way a browser keeps it in local storage.
package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// BlobStore is a key-value store of opaque values.
type BlobStore interface {
	// Get returns nil and no error when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	// Modify replaces the value with fn's result while holding exclusive
	// access to the key. fn receives nil when the key is absent.
	Modify(ctx context.Context, key string, fn func(old []byte) ([]byte, error)) error
	Close() error
}

// FileBlobStore keeps each key in its own file inside a directory.
// Writes go to a temporary file which is renamed over the old value, and a
// sibling lock file serializes writers across processes.
type FileBlobStore struct {
	dir string
}

func NewFileBlobStore(dir string) (*FileBlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileBlobStore{dir: dir}, nil
}

func (s *FileBlobStore) Get(_ context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.withLock(key, syscall.LOCK_SH, func() error {
		var err error
		value, err = s.read(key)
		return err
	})
	return value, err
}

func (s *FileBlobStore) Put(_ context.Context, key string, value []byte) error {
	return s.withLock(key, syscall.LOCK_EX, func() error {
		return s.write(key, value)
	})
}

func (s *FileBlobStore) Modify(_ context.Context, key string, fn func([]byte) ([]byte, error)) error {
	return s.withLock(key, syscall.LOCK_EX, func() error {
		old, err := s.read(key)
		if err != nil {
			return err
		}

		value, err := fn(old)
		if err != nil {
			return err
		}
		return s.write(key, value)
	})
}

func (s *FileBlobStore) Close() error {
	return nil
}

func (s *FileBlobStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileBlobStore) withLock(key string, how int, fn func() error) error {
	lock, err := os.OpenFile(s.path(key)+".lock", os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open lock file: %w", err)
	}
	defer lock.Close()

	if err := syscall.Flock(int(lock.Fd()), how); err != nil {
		return fmt.Errorf("failed to lock %s: %w", key, err)
	}
	defer syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)

	return fn()
}

func (s *FileBlobStore) read(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

func (s *FileBlobStore) write(key string, value []byte) error {
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	return nil
}
