// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about layout computation, optimization passes, and cache
// operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core engine dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Layout().OnFamilyStart(ctx, familyHash, chainCount)
//	// ... optimize family ...
//	observability.Layout().OnFamilyComplete(ctx, familyHash, duration, seeded)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pass Metrics
// =============================================================================

// PassMetrics summarizes the effect of one optimization pass over a family.
// Instances are delivered to [LayoutHooks.OnPassComplete] and to the scoreboard
// callback configured on the engine.
type PassMetrics struct {
	Strategies    []string      // Strategy names executed in this pass
	Iterations    int           // Iterations actually run
	CostBefore    float64       // Family cost before the pass
	CostAfter     float64       // Family cost after the pass
	MovesAccepted int           // Lane moves durably applied
	Duration      time.Duration // Wall time for the pass
}

// Improved reports whether the pass reduced family cost.
func (m PassMetrics) Improved() bool { return m.CostAfter < m.CostBefore }

// PassLogFunc receives per-pass scoreboard diagnostics.
type PassLogFunc func(passIndex int, metrics PassMetrics)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from the layout engine.
type LayoutHooks interface {
	// Computation events
	OnComputeStart(ctx context.Context, nodeCount, linkCount int)
	OnComputeComplete(ctx context.Context, laneCount int, duration time.Duration, err error)

	// Per-family optimization events
	OnFamilyStart(ctx context.Context, familyHash string, chainCount int)
	OnFamilyComplete(ctx context.Context, familyHash string, duration time.Duration, seeded bool)

	// Per-pass scoreboard events
	OnPassComplete(ctx context.Context, passIndex int, metrics PassMetrics)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnComputeStart(context.Context, int, int)                       {}
func (NoopLayoutHooks) OnComputeComplete(context.Context, int, time.Duration, error)   {}
func (NoopLayoutHooks) OnFamilyStart(context.Context, string, int)                     {}
func (NoopLayoutHooks) OnFamilyComplete(context.Context, string, time.Duration, bool)  {}
func (NoopLayoutHooks) OnPassComplete(context.Context, int, PassMetrics)               {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks LayoutHooks = NoopLayoutHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any layout computation.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	cacheHooks = NoopCacheHooks{}
}
