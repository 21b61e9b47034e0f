// Package precomp connects the layout pipeline to precomputed lane
// assignments published by the offline optimization service.
//
// Large families are expensive to optimize live. The offline service runs the
// same engine with a much larger iteration budget, then publishes the
// resulting assignment keyed by family content hash. At render time the
// adapter looks that assignment up and seeds the engine with it, skipping
// live optimization entirely.
//
// Lookups are best-effort: a missing record, a store failure, a timeout, or a
// record that no longer matches the family's chain membership all degrade
// silently to live optimization. Precomputation is an accelerator, never a
// correctness dependency.
package precomp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/riverlane-tools/riverlane/pkg/cache"
	"github.com/riverlane-tools/riverlane/pkg/chain"
)

// Record is one published lane assignment for a family.
type Record struct {
	FamilyHash  string         `json:"family_hash" bson:"family_hash"`
	Lanes       map[string]int `json:"layout_data" bson:"layout_data"` // chain ID -> lane
	Score       float64        `json:"score" bson:"score"`             // family cost at publish time
	OptimizedAt time.Time      `json:"optimized_at" bson:"optimized_at"`
}

// Store retrieves and publishes precomputed records.
type Store interface {
	// Lookup returns the record for the family hash. The second return value
	// reports whether a record was found; the error return is reserved for
	// backend failures.
	Lookup(ctx context.Context, familyHash string) (*Record, bool, error)

	// Publish stores a record, replacing any existing one for the same hash.
	Publish(ctx context.Context, rec *Record) error

	// Close releases backend resources.
	Close() error
}

// =============================================================================
// Cache-backed Store
// =============================================================================

// CacheStore keeps records in a byte-level cache, one JSON entry per family
// hash. This is the store used by the CLI (file cache) and by deployments
// that share a Redis instance with the offline service.
type CacheStore struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewCacheStore wraps a cache as a record store. A zero ttl publishes
// records without expiration.
func NewCacheStore(c cache.Cache, ttl time.Duration) *CacheStore {
	return &CacheStore{cache: c, ttl: ttl}
}

// Lookup implements [Store].
func (s *CacheStore) Lookup(ctx context.Context, familyHash string) (*Record, bool, error) {
	data, hit, err := s.cache.Get(ctx, cache.LayoutKey(familyHash))
	if err != nil || !hit {
		return nil, false, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		// A corrupt entry is a miss, not a failure.
		return nil, false, nil
	}
	return &rec, true, nil
}

// Publish implements [Store].
func (s *CacheStore) Publish(ctx context.Context, rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, cache.LayoutKey(rec.FamilyHash), data, s.ttl)
}

// Close implements [Store].
func (s *CacheStore) Close() error { return s.cache.Close() }

// =============================================================================
// Adapter
// =============================================================================

// DefaultLookupTimeout bounds a single store lookup during layout
// computation. Layout latency must not hang on a slow backend.
const DefaultLookupTimeout = 150 * time.Millisecond

// Adapter decides when to consult the store and validates what it returns.
type Adapter struct {
	store     Store
	minChains int
	timeout   time.Duration
}

// NewAdapter creates an adapter. Families smaller than minChains never
// trigger a lookup; for them live optimization is cheaper than the round
// trip. A zero timeout uses [DefaultLookupTimeout].
func NewAdapter(store Store, minChains int, timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}
	return &Adapter{store: store, minChains: minChains, timeout: timeout}
}

// Seed returns the precomputed lane assignment for the family, if one exists
// and is still valid for its current membership. The boolean return reports
// whether the assignment is usable; on false the caller optimizes live.
func (a *Adapter) Seed(ctx context.Context, g *chain.Graph, fam *chain.Family) (map[string]int, bool) {
	if a == nil || a.store == nil || fam.Size() < a.minChains {
		return nil, false
	}

	lookupCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	rec, found, err := a.store.Lookup(lookupCtx, fam.Hash(g))
	if err != nil || !found {
		return nil, false
	}

	// The hash already pins membership, but a store can hand back anything;
	// validate before trusting it with placement.
	for _, id := range fam.Chains {
		lane, ok := rec.Lanes[id]
		if !ok || lane < 0 {
			return nil, false
		}
	}
	return rec.Lanes, true
}
