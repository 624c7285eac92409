package kvstore

import (
	"context"
	"sync"
)

// Store is the narrow persistence capability the image library depends on: a
// string-valued key-value lookup with full-value replacement on write. The
// second Get return reports whether the key exists, so callers can tell an
// absent value from an empty one.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Memory is an in-process Store. It backs tests and the "memory" backend,
// where durability across restarts is not wanted.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Close() error { return nil }

var _ Store = (*Memory)(nil)
