// Package cache stores built dictionary tables between runs.
//
// Hashing a large word list is the slowest step of a conversion run, and the
// result only changes when the word list or the extension table changes. The
// CLI therefore keeps built tables in a small file cache keyed by a digest of
// everything that went into them.
//
// Two implementations are provided:
//   - [FileCache] stores entries as JSON files under a directory
//   - [NullCache] never stores anything (--no-cache)
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the cached data and whether it was found.
	// A corrupt or expired entry is reported as a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
