package cache

import (
	"context"
	"sync"
	"time"
)

// Entry is a stored value and the moment it was stored
type Entry struct {
	Key      string
	Value    []byte
	StoredAt time.Time
	TTL      time.Duration
}

// Valid reports whether the entry is still fresh at now
func (e Entry) Valid(now time.Time) bool {
	return now.Sub(e.StoredAt) < e.TTL
}

// MemoryStore is a process-local store. Expired entries are dropped on the
// read that finds them; there is no background sweeper.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]Entry
	now     func() time.Time
}

// NewMemoryStore creates an empty store using the wall clock
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(time.Now)
}

// NewMemoryStoreWithClock creates a store with an injected clock
func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]Entry),
		now:     now,
	}
}

// Get returns the value for key, evicting it if expired
func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return nil, ErrMiss
	}
	if !entry.Valid(m.now()) {
		delete(m.entries, key)
		return nil, ErrMiss
	}
	return entry.Value, nil
}

// Set stores value for key, overwriting any previous entry
func (m *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = Entry{
		Key:      key,
		Value:    value,
		StoredAt: m.now(),
		TTL:      ttl,
	}
	return nil
}

// Len returns the number of entries held, expired or not
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
