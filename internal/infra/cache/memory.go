package cache

import (
	"context"
	"sync"
	"time"

	"github.com/dfstats/deltaquery/internal/core/domain"
)

type entry struct {
	body     string
	storedAt time.Time
}

// Memory is an in-process ResponseCache. Expiry is checked lazily on read;
// stale entries stay in the map until the next Put overwrites them.
type Memory struct {
	expiry time.Duration

	mu      sync.Mutex
	entries map[domain.CacheKey]entry

	now func() time.Time
}

// NewMemory creates a memory cache with the given entry lifetime.
func NewMemory(expiry time.Duration) *Memory {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &Memory{
		expiry:  expiry,
		entries: make(map[domain.CacheKey]entry),
		now:     time.Now,
	}
}

// Get returns the cached body if the entry is younger than the expiry.
func (m *Memory) Get(_ context.Context, key domain.CacheKey) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return "", false
	}
	if m.now().Sub(e.storedAt) >= m.expiry {
		return "", false
	}
	return e.body, true
}

// Put overwrites any existing entry for key with the current timestamp.
func (m *Memory) Put(_ context.Context, key domain.CacheKey, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry{body: body, storedAt: m.now()}
}
