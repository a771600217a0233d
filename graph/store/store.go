// Package store provides key-value persistence for curriculum progress.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a key has never been written or was deleted.
var ErrNotFound = errors.New("not found")

// ErrClosed is returned by every operation on a store after Close.
var ErrClosed = errors.New("store is closed")

// Store is a single-writer string key-value store.
//
// The tracker keeps one key per curriculum instance whose value is the JSON
// array of completed course IDs. Stores do not interpret values.
//
// Implementations:
//   - MemStore: in-memory map (tests, ephemeral sessions)
//   - FileStore: MemStore snapshotted to a JSON file on every write
//   - SQLiteStore: single-file database
//   - MySQLStore: shared relational database
//   - RedisStore: Redis string keys
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Put replaces the value stored under key. Last writer wins.
	Put(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources. Calling Close twice is a no-op.
	Close() error
}

// Entry is a single key-value pair, used by MemStore snapshots.
type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
