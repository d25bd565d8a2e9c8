// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about rendering, font resolution, and cache
// operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This avoids import cycles (hooks are registered by main, not by
// libraries) and keeps the core library free of observability frameworks.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRenderHooks(&myRenderHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Render().OnLayoutStart(ctx, entryCount)
//	// ... lay out ...
//	observability.Render().OnLayoutComplete(ctx, entryCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// RenderHooks receives events from the rendering pipeline.
type RenderHooks interface {
	// Layout events
	OnLayoutStart(ctx context.Context, entryCount int)
	OnLayoutComplete(ctx context.Context, entryCount int, duration time.Duration, err error)

	// Draw events
	OnDrawStart(ctx context.Context, width, height int)
	OnDrawComplete(ctx context.Context, width, height int, duration time.Duration, err error)
}

// FontHooks receives events from font resolution and downloads.
type FontHooks interface {
	// OnResolve records a logical-name-to-file resolution.
	OnResolve(ctx context.Context, name, variation, path string, err error)

	// OnDownload records a font download attempt.
	OnDownload(ctx context.Context, url string, size int, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnLayoutStart(context.Context, int)                            {}
func (NoopRenderHooks) OnLayoutComplete(context.Context, int, time.Duration, error)   {}
func (NoopRenderHooks) OnDrawStart(context.Context, int, int)                         {}
func (NoopRenderHooks) OnDrawComplete(context.Context, int, int, time.Duration, error) {
}

// NoopFontHooks is a no-op implementation of FontHooks.
type NoopFontHooks struct{}

func (NoopFontHooks) OnResolve(context.Context, string, string, string, error)     {}
func (NoopFontHooks) OnDownload(context.Context, string, int, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	renderHooks RenderHooks = NoopRenderHooks{}
	fontHooks   FontHooks   = NoopFontHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup before any rendering.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetFontHooks registers custom font hooks.
// This should be called once at application startup before any font use.
func SetFontHooks(h FontHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		fontHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache use.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Font returns the registered font hooks.
func Font() FontHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return fontHooks
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
	renderHooks = NoopRenderHooks{}
	fontHooks = NoopFontHooks{}
	cacheHooks = NoopCacheHooks{}
}
