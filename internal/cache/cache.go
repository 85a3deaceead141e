// Package cache stores raw API responses for a limited time.
package cache

import (
	"context"
	"sync"
	"time"
)

// Cache is a byte store with per entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (Nop) Set(context.Context, string, []byte, time.Duration) error { return nil }

type memoryEntry struct {
	value   []byte
	expires time.Time
}

// Memory is an in-process cache.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemory creates an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !m.now().Before(e.expires) {
		delete(m.entries, key)
		return nil, false, nil
	}
	return e.value, true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{
		value:   append([]byte(nil), value...),
		expires: m.now().Add(ttl),
	}
	return nil
}
