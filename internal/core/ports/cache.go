package ports

import (
	"context"
	"time"
)

// Cache is a small TTL key/value store used to memoize expensive lookups,
// currently routing distances. Misses are not errors.
type Cache interface {
	// Get returns the cached value and whether it was present and fresh.
	Get(ctx context.Context, key string) (string, bool)

	// Set stores a value with the given time to live.
	Set(ctx context.Context, key, value string, ttl time.Duration)
}
