// Package persist saves and restores document content through a
// string-keyed Store.
//
// A Bridge writes the raw JSON form of a document under one key on explicit
// save and reads it back once at startup. Stores are injectable: MemoryStore
// for tests and ephemeral sessions, FileStore for a local JSON file, and
// RedisStore for a shared Redis instance.
package persist

import (
	"context"
	"sync"
)

// Store is a string-keyed durable store.
//
// Get reports ok=false for an absent key; err is reserved for failures of
// the store itself.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// MemoryStore is an in-process Store. The zero value is ready to use.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (m *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = make(map[string]string)
	}
	m.data[key] = value
	return nil
}
