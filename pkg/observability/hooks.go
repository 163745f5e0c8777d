// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about resizer activity and HTTP API traffic.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the resizer and the
// sizing engine stay free of any metrics framework.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetResizerHooks(&myResizerHooks{})
//	    observability.SetHTTPHooks(&myHTTPHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Resizer().OnSchedule(id)
//	// ... quiet period elapses ...
//	observability.Resizer().OnRecompute(id, width, height, scale, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Resizer Hooks
// =============================================================================

// ResizerHooks receives events from resize controllers.
// Implementations must be safe for concurrent use: debounce timers fire on
// their own goroutines.
type ResizerHooks interface {
	// OnSchedule records a debounced recompute request.
	OnSchedule(resizerID string)

	// OnRecompute records a completed recompute and the applied placement.
	OnRecompute(resizerID string, width, height, scale float64, duration time.Duration)

	// OnSkip records a recompute skipped because the resizer is inactive or unbound.
	OnSkip(resizerID, reason string)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	// OnRequest records an incoming HTTP request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records the response written for a request.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopResizerHooks is a no-op implementation of ResizerHooks.
type NoopResizerHooks struct{}

func (NoopResizerHooks) OnSchedule(string)                                            {}
func (NoopResizerHooks) OnRecompute(string, float64, float64, float64, time.Duration) {}
func (NoopResizerHooks) OnSkip(string, string)                                        {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	resizerHooks ResizerHooks = NoopResizerHooks{}
	httpHooks    HTTPHooks    = NoopHTTPHooks{}
	hooksMu      sync.RWMutex
)

// SetResizerHooks registers custom resizer hooks.
// This should be called once at application startup before any resizer is created.
func SetResizerHooks(h ResizerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		resizerHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before serving requests.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Resizer returns the registered resizer hooks.
func Resizer() ResizerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return resizerHooks
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
	resizerHooks = NoopResizerHooks{}
	httpHooks = NoopHTTPHooks{}
}
