package store

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
)

// MemStore is an in-memory implementation of Store.
//
// Designed for:
//   - Testing and development
//   - Sessions where progress does not need to outlive the process
//
// MemStore is thread-safe. Its contents can be serialized with MarshalJSON
// and restored with UnmarshalJSON; FileStore builds on this.
type MemStore struct {
	mu      sync.RWMutex
	entries map[string]string
	closed  bool
}

// NewMemStore creates a new, empty in-memory store.
//
// Example:
//
//	st := store.NewMemStore()
//	tracker, _ := graph.New(courses, graph.WithStore(st))
func NewMemStore() *MemStore {
	return &MemStore{
		entries: make(map[string]string),
	}
}

// Get returns the value for key or ErrNotFound.
func (m *MemStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return "", ErrClosed
	}

	value, ok := m.entries[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Put stores value under key, overwriting any previous value.
func (m *MemStore) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	m.entries[key] = value
	return nil
}

// Delete removes key if present.
func (m *MemStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	delete(m.entries, key)
	return nil
}

// Close marks the store closed. Data is discarded.
func (m *MemStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	return nil
}

// Len returns the number of stored keys.
func (m *MemStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// MarshalJSON serializes the store as a key-sorted array of entries.
//
// Example:
//
//	data, err := st.MarshalJSON()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("progress.json", data, 0o644)
func (m *MemStore) MarshalJSON() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return json.Marshal(m.snapshotLocked())
}

func (m *MemStore) snapshotLocked() []Entry {
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		out = append(out, Entry{Key: k, Value: m.entries[k]})
	}
	return out
}

// UnmarshalJSON replaces the store contents with the serialized entries.
// On error the existing contents are kept.
func (m *MemStore) UnmarshalJSON(data []byte) error {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make(map[string]string, len(entries))
	for _, e := range entries {
		m.entries[e.Key] = e.Value
	}
	return nil
}
