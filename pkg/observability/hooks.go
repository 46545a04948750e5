// Package observability provides hooks for metrics around the hint pipeline.
//
// Libraries emit events through package-level hook registries; the binary
// decides at startup which implementation receives them. The defaults are
// no-ops, so packages can be used (and tested) without any metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	m := observability.NewPrometheus(prometheus.NewRegistry())
//	observability.SetHintHooks(m)
//	observability.SetCacheHooks(m)
//	observability.SetHTTPHooks(m)
//
// Libraries call hooks to emit events:
//
//	observability.Hints().OnHintsStart(ctx, path)
//	// ... reconcile ...
//	observability.Hints().OnHintsComplete(ctx, path, len(hints), failed, time.Since(start))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Hint Hooks
// =============================================================================

// HintHooks receives events from the hint reconciler.
type HintHooks interface {
	// OnHintsStart records an inbound hint request for a manifest.
	OnHintsStart(ctx context.Context, path string)

	// OnHintsComplete records a finished hint request. failed counts the
	// registry fetches in the batch that did not succeed.
	OnHintsComplete(ctx context.Context, path string, hints, failed int, duration time.Duration)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from version cache lookups.
type CacheHooks interface {
	// OnCacheHit records a fresh entry that made a fetch unnecessary.
	OnCacheHit(ctx context.Context, crate string)

	// OnCacheMiss records a crate with no entry at all.
	OnCacheMiss(ctx context.Context, crate string)

	// OnCacheStale records an entry older than the freshness window.
	OnCacheStale(ctx context.Context, crate string)

	// OnCacheSet records a cache write after a successful fetch.
	OnCacheSet(ctx context.Context, crate string)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from registry HTTP calls.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopHintHooks is a no-op implementation of HintHooks.
type NoopHintHooks struct{}

func (NoopHintHooks) OnHintsStart(context.Context, string)                             {}
func (NoopHintHooks) OnHintsComplete(context.Context, string, int, int, time.Duration) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)   {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)  {}
func (NoopCacheHooks) OnCacheStale(context.Context, string) {}
func (NoopCacheHooks) OnCacheSet(context.Context, string)   {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	hintHooks  HintHooks  = NoopHintHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	httpHooks  HTTPHooks  = NoopHTTPHooks{}
	hooksMu    sync.RWMutex
)

// SetHintHooks registers custom hint hooks.
// This should be called once at application startup before serving requests.
func SetHintHooks(h HintHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		hintHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Hints returns the registered hint hooks.
func Hints() HintHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return hintHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	hintHooks = NoopHintHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
