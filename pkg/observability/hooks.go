// Package observability provides hooks for instrumenting PhyloPic traffic.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about API calls and name lookups.
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
//   - Allows different backends (a debug logger, OpenTelemetry, Prometheus, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetAPIHooks(&myAPIHooks{})
//	    observability.SetLookupHooks(&myLookupHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.API().OnRequest(ctx, "GET", "/autocomplete")
//	// ... perform the request ...
//	observability.API().OnResponse(ctx, "GET", "/autocomplete", status, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// API Hooks
// =============================================================================

// APIHooks receives events from PhyloPic API traffic, including image file
// downloads.
type APIHooks interface {
	// OnRequest records an outgoing request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records a response.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)

	// OnError records a transport failure (network failure, timeout).
	OnError(ctx context.Context, method, path string, err error)
}

// =============================================================================
// Lookup Hooks
// =============================================================================

// LookupHooks receives events from taxonomic name resolution.
type LookupHooks interface {
	// OnResolve records a completed name resolution.
	OnResolve(ctx context.Context, name string, matches int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopAPIHooks is a no-op implementation of APIHooks.
type NoopAPIHooks struct{}

func (NoopAPIHooks) OnRequest(context.Context, string, string)                      {}
func (NoopAPIHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopAPIHooks) OnError(context.Context, string, string, error)                 {}

// NoopLookupHooks is a no-op implementation of LookupHooks.
type NoopLookupHooks struct{}

func (NoopLookupHooks) OnResolve(context.Context, string, int, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	apiHooks    APIHooks    = NoopAPIHooks{}
	lookupHooks LookupHooks = NoopLookupHooks{}
	hooksMu     sync.RWMutex
)

// SetAPIHooks registers custom API hooks.
// This should be called once at application startup before any API operations.
func SetAPIHooks(h APIHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		apiHooks = h
	}
}

// SetLookupHooks registers custom lookup hooks.
// This should be called once at application startup before any lookups.
func SetLookupHooks(h LookupHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		lookupHooks = h
	}
}

// API returns the registered API hooks.
func API() APIHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return apiHooks
}

// Lookup returns the registered lookup hooks.
func Lookup() LookupHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return lookupHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	apiHooks = NoopAPIHooks{}
	lookupHooks = NoopLookupHooks{}
}
