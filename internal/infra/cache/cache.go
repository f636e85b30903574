package cache

import (
	"context"
	"time"

	"github.com/dfstats/deltaquery/internal/core/domain"
)

// ResponseCache memoizes raw response bodies by request fingerprint for a
// bounded time window.
type ResponseCache interface {
	// Get returns the cached body if a live entry exists for key.
	Get(ctx context.Context, key domain.CacheKey) (string, bool)
	// Put unconditionally overwrites the entry for key with a fresh timestamp.
	Put(ctx context.Context, key domain.CacheKey, body string)
}

// DefaultExpiry bounds entry lifetime when no expiry is configured.
const DefaultExpiry = 5 * time.Minute
