package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore is a MemStore whose contents are written to a JSON file after
// every mutation. It is the closest analogue to browser local storage: a
// small, local, synchronous key-value file.
//
// The file is replaced atomically (write to a temp file, then rename).
type FileStore struct {
	mu   sync.Mutex
	mem  *MemStore
	path string
}

// NewFileStore opens (or lazily creates) the store file at path.
//
// A missing file yields an empty store. A file that cannot be decoded is an
// error: unlike a single corrupt value, it may hold other curricula's data.
func NewFileStore(path string) (*FileStore, error) {
	mem := NewMemStore()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// first use
	case err != nil:
		return nil, fmt.Errorf("failed to read store file: %w", err)
	case len(data) > 0:
		if err := mem.UnmarshalJSON(data); err != nil {
			return nil, fmt.Errorf("failed to decode store file %s: %w", path, err)
		}
	}

	return &FileStore{mem: mem, path: path}, nil
}

// Get returns the value for key or ErrNotFound.
func (f *FileStore) Get(ctx context.Context, key string) (string, error) {
	return f.mem.Get(ctx, key)
}

// Put stores value under key and rewrites the file. If the file cannot be
// written the previous value is kept.
func (f *FileStore) Put(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	prev, had, err := f.lookupLocked(ctx, key)
	if err != nil {
		return err
	}
	if err := f.mem.Put(ctx, key, value); err != nil {
		return err
	}
	if err := f.flushLocked(); err != nil {
		f.restoreLocked(ctx, key, prev, had)
		return err
	}
	return nil
}

// Delete removes key and rewrites the file.
func (f *FileStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	prev, had, err := f.lookupLocked(ctx, key)
	if err != nil {
		return err
	}
	if err := f.mem.Delete(ctx, key); err != nil {
		return err
	}
	if err := f.flushLocked(); err != nil {
		f.restoreLocked(ctx, key, prev, had)
		return err
	}
	return nil
}

// Close closes the underlying MemStore. The file is already up to date.
func (f *FileStore) Close() error {
	return f.mem.Close()
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) lookupLocked(ctx context.Context, key string) (string, bool, error) {
	value, err := f.mem.Get(ctx, key)
	switch {
	case errors.Is(err, ErrNotFound):
		return "", false, nil
	case err != nil:
		return "", false, err
	}
	return value, true, nil
}

// restoreLocked puts key back to what the file still holds after a failed
// flush.
func (f *FileStore) restoreLocked(ctx context.Context, key, prev string, had bool) {
	if had {
		_ = f.mem.Put(ctx, key, prev)
		return
	}
	_ = f.mem.Delete(ctx, key)
}

func (f *FileStore) flushLocked() error {
	data, err := f.mem.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".store-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close store file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}
