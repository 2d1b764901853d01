// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about generation runs and cache operations.
//
// # Architecture
//
// Hook interfaces are defined per event category, each with a no-op default
// that stays in place until a custom implementation is registered. Hooks
// are registered by main, not by libraries, so the pipeline never imports
// a metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnParseComplete(ctx, path, cached, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from a generation run.
type PipelineHooks interface {
	// OnDiscover reports the number of sources found under root.
	OnDiscover(ctx context.Context, root string, sources int)

	// OnParseComplete reports one parsed source; cached is true when the
	// model came from the cache.
	OnParseComplete(ctx context.Context, path string, cached bool, duration time.Duration, err error)

	// OnIndexBuilt reports the finished symbol index.
	OnIndexBuilt(ctx context.Context, entries int, duration time.Duration)

	// OnRenderComplete reports one rendered module.
	OnRenderComplete(ctx context.Context, module string, duration time.Duration, err error)

	// OnWrite reports the outcome for one output document
	// ("written", "unchanged" or "stale").
	OnWrite(ctx context.Context, path, status string)
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

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnDiscover(context.Context, string, int)                            {}
func (NoopPipelineHooks) OnParseComplete(context.Context, string, bool, time.Duration, error) {}
func (NoopPipelineHooks) OnIndexBuilt(context.Context, int, time.Duration)                  {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, time.Duration, error)    {}
func (NoopPipelineHooks) OnWrite(context.Context, string, string)                           {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
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

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
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
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
}
