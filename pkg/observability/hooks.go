// Package observability provides hooks for metrics, tracing, and logging.
//
// Hooks let a host process instrument contact-sheet runs without the library
// depending on any particular backend. The CLI registers nothing and gets
// the no-op defaults; a render-farm wrapper can register its own.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetOutputHooks(&myOutputHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnScanStart(ctx, runID, dir)
//	// ... walk the render tree ...
//	observability.Pipeline().OnScanComplete(ctx, runID, dir, shotCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the contact-sheet pipeline. Every event
// carries the run ID assigned when the run started.
type PipelineHooks interface {
	// Scan events
	OnScanStart(ctx context.Context, runID, dir string)
	OnScanComplete(ctx context.Context, runID, dir string, shotCount int, duration time.Duration, err error)

	// Thumbnail loading events
	OnLoadComplete(ctx context.Context, runID string, loaded, skipped int, duration time.Duration, err error)

	// Render events, once per sheet variant ("sheet", "labeled")
	OnRenderStart(ctx context.Context, runID, variant string, imageCount int)
	OnRenderComplete(ctx context.Context, runID, variant string, duration time.Duration, err error)
}

// =============================================================================
// Output Hooks
// =============================================================================

// OutputHooks receives events about files written and archived.
type OutputHooks interface {
	// OnArchive records superseded outputs moved aside before a new version.
	OnArchive(ctx context.Context, runID string, version, moved int)

	// OnWrite records an output file written to disk.
	OnWrite(ctx context.Context, runID, path string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnScanStart(context.Context, string, string) {}
func (NoopPipelineHooks) OnScanComplete(context.Context, string, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, int, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, string, string, int)                     {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, string, time.Duration, error) {
}

// NoopOutputHooks is a no-op implementation of OutputHooks.
type NoopOutputHooks struct{}

func (NoopOutputHooks) OnArchive(context.Context, string, int, int)  {}
func (NoopOutputHooks) OnWrite(context.Context, string, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	outputHooks   OutputHooks   = NoopOutputHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any runs.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetOutputHooks registers custom output hooks.
func SetOutputHooks(h OutputHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		outputHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Output returns the registered output hooks.
func Output() OutputHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return outputHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	outputHooks = NoopOutputHooks{}
}
