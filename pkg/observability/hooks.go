// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register
// hooks at startup to receive events about editor operations, graph
// rebuilds, layout runs, and cache activity.
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
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, plain logs)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEditorHooks(&myEditorHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Editor().OnBuildStart(ctx, scope)
//	// ... rebuild the graph ...
//	observability.Editor().OnBuildComplete(ctx, scope, nodes, edges, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Editor Hooks
// =============================================================================

// EditorHooks receives events from the graph editor core.
type EditorHooks interface {
	// Graph rebuild events
	OnBuildStart(ctx context.Context, scope string)
	OnBuildComplete(ctx context.Context, scope string, nodeCount, edgeCount int, duration time.Duration)

	// Edit events. rejected is true when the action was declined without
	// a state change (type mismatch, read-only scope, ...).
	OnEdit(ctx context.Context, action string, rejected bool)

	// Layout events
	OnLayoutComplete(ctx context.Context, scope string, nodeCount int, duration time.Duration)
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
// No-op defaults
// =============================================================================

type noopEditorHooks struct{}

func (noopEditorHooks) OnBuildStart(context.Context, string)                             {}
func (noopEditorHooks) OnBuildComplete(context.Context, string, int, int, time.Duration) {}
func (noopEditorHooks) OnEdit(context.Context, string, bool)                             {}
func (noopEditorHooks) OnLayoutComplete(context.Context, string, int, time.Duration)     {}

type noopCacheHooks struct{}

func (noopCacheHooks) OnCacheHit(context.Context, string)      {}
func (noopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (noopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Registry
// =============================================================================

var (
	mu          sync.RWMutex
	editorHooks EditorHooks = noopEditorHooks{}
	cacheHooks  CacheHooks  = noopCacheHooks{}
)

// SetEditorHooks registers editor hooks. Pass nil to restore the no-op
// default. Typically called once at startup before any editing begins.
func SetEditorHooks(h EditorHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		editorHooks = noopEditorHooks{}
		return
	}
	editorHooks = h
}

// SetCacheHooks registers cache hooks. Pass nil to restore the no-op default.
func SetCacheHooks(h CacheHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		cacheHooks = noopCacheHooks{}
		return
	}
	cacheHooks = h
}

// Editor returns the registered editor hooks (never nil).
func Editor() EditorHooks {
	mu.RLock()
	defer mu.RUnlock()
	return editorHooks
}

// Cache returns the registered cache hooks (never nil).
func Cache() CacheHooks {
	mu.RLock()
	defer mu.RUnlock()
	return cacheHooks
}
