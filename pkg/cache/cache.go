// Package cache provides the byte-level cache used by the precomputed-layout
// adapter and the CLI.
//
// The [Cache] interface abstracts over backends: a file cache for the CLI, a
// Redis cache shared with the offline optimization service, and a null cache
// for tests and cache-disabled runs. Cache failures are never fatal to layout
// computation - callers treat any error as a miss and fall through to live
// computation.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-level key-value store with per-entry TTLs.
//
// Implementations must treat missing keys as (nil, false, nil), reserving the
// error return for backend failures. Callers distinguish "not cached" from
// "cache broken" only for diagnostics; both degrade to recomputation.
type Cache interface {
	// Get retrieves the value for key. The second return value reports
	// whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores the value under key. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Key type labels reported to cache observability hooks.
const (
	KeyTypeLayout = "layout"
)

// LayoutKey builds the cache key for a family's precomputed lane assignment.
// The familyHash argument is the family content hash (see chain.Family.Hash),
// so identical families share cache entries across documents and processes.
func LayoutKey(familyHash string) string {
	return "layout:" + familyHash
}
