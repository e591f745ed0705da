// Package observability provides hooks for conversion metrics and tracing.
//
// Libraries emit events through the registered hooks; the defaults are
// no-ops, so the codec packages stay free of any metrics backend. The CLI
// registers a collector at startup to print a batch summary.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetConversionHooks(&myHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Conversion().OnReadStart(ctx, path, "binary")
//	// ... decode ...
//	observability.Conversion().OnReadComplete(ctx, path, "binary", nodes, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Conversion Hooks
// =============================================================================

// ConversionHooks receives events from document conversion.
type ConversionHooks interface {
	// Dictionary events
	OnDictionaryLoad(ctx context.Context, kind string, entries int, cached bool)

	// Read events; format is "binary" or "tree"
	OnReadStart(ctx context.Context, path, format string)
	OnReadComplete(ctx context.Context, path, format string, nodeCount int, duration time.Duration, err error)

	// Write events
	OnWriteComplete(ctx context.Context, path, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementation
// =============================================================================

// NoopConversionHooks is a no-op implementation of ConversionHooks.
type NoopConversionHooks struct{}

func (NoopConversionHooks) OnDictionaryLoad(context.Context, string, int, bool) {}
func (NoopConversionHooks) OnReadStart(context.Context, string, string)         {}
func (NoopConversionHooks) OnReadComplete(context.Context, string, string, int, time.Duration, error) {
}
func (NoopConversionHooks) OnWriteComplete(context.Context, string, string, int, time.Duration, error) {
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	conversionHooks ConversionHooks = NoopConversionHooks{}
	hooksMu         sync.RWMutex
)

// SetConversionHooks registers custom conversion hooks.
// This should be called once at application startup before any conversion.
// A nil argument is ignored.
func SetConversionHooks(h ConversionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		conversionHooks = h
	}
}

// Conversion returns the registered conversion hooks.
func Conversion() ConversionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return conversionHooks
}

// Reset restores the no-op default.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	conversionHooks = NoopConversionHooks{}
}
