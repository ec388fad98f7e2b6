package store

import (
	"context"
	"sync"
	"time"
)

// Memory implements Store in process memory. It backs tests and local runs
// where no redis is available; entries respect their TTL against an
// injectable clock.
type Memory struct {
	mu   sync.RWMutex
	data map[string]memoryEntry
	now  func() time.Time
}

type memoryEntry struct {
	value   string
	expires time.Time // zero means no expiry
}

// MemoryOption applies a configuration option to the Memory store.
type MemoryOption func(*Memory)

// WithClock replaces the store's clock, letting tests advance TTLs.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		if now != nil {
			m.now = now
		}
	}
}

// NewMemory creates an empty in-memory store.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		data: make(map[string]memoryEntry),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) lookup(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.data[key]
	if !ok {
		return "", false
	}
	if !e.expires.IsZero() && m.now().After(e.expires) {
		return "", false
	}
	return e.value, true
}

// Get performs a hard read against process memory, which is always
// reachable, so the only error it can return is ErrNotFound.
func (m *Memory) Get(_ context.Context, key string) (string, error) {
	v, ok := m.lookup(key)
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// CacheGet reads a key, treating expired and missing entries as a miss.
func (m *Memory) CacheGet(_ context.Context, key string) (string, bool) {
	return m.lookup(key)
}

// CacheSet writes a key with a TTL; a zero TTL keeps the entry forever.
func (m *Memory) CacheSet(_ context.Context, key, value string, ttl time.Duration) {
	var expires time.Time
	if ttl > 0 {
		expires = m.now().Add(ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = memoryEntry{value: value, expires: expires}
}

// Set seeds a key without expiry, for tests and local fixtures.
func (m *Memory) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = memoryEntry{value: value}
}

// Delete removes a key.
func (m *Memory) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// TTL reports the remaining lifetime of a key; ok is false when the key is
// missing and zero duration means no expiry.
func (m *Memory) TTL(key string) (time.Duration, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.data[key]
	if !ok {
		return 0, false
	}
	if e.expires.IsZero() {
		return 0, true
	}
	return e.expires.Sub(m.now()), true
}
