// Package observability lets a binary watch the pipeline, the caches, and
// the preview server without those packages knowing who is listening.
//
// Hooks default to no-ops. [LogHooks] reports every event as a debug log
// line, and [Counters] tallies them for tests and summaries:
//
//	hooks := observability.NewLogHooks(logger)
//	observability.SetPipelineHooks(hooks)
//	observability.SetCacheHooks(hooks)
//	observability.SetHTTPHooks(hooks)
//
// Instrumented code fetches the current hooks at each event:
//
//	observability.Pipeline().OnLayoutStart(ctx, variant)
//	// ... lay out the slide ...
//	observability.Pipeline().OnLayoutComplete(ctx, variant, logoCount, duration, err)
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// Cache key types reported to [CacheHooks].
const (
	KeyTypeMetrics  = "metrics"
	KeyTypeArtifact = "artifact"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the slide pipeline.
type PipelineHooks interface {
	// Measure events
	OnMeasureStart(ctx context.Context, imageCount int)
	OnMeasureComplete(ctx context.Context, imageCount, cacheHits int, duration time.Duration, err error)

	// Layout events, once per variant
	OnLayoutStart(ctx context.Context, variant string)
	OnLayoutComplete(ctx context.Context, variant string, logoCount int, duration time.Duration, err error)

	// Render events, once per variant
	OnRenderStart(ctx context.Context, variant string, formats []string)
	OnRenderComplete(ctx context.Context, variant string, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache lookups made by the pipeline.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the preview server.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records the response status and latency.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnMeasureStart(context.Context, int)                                 {}
func (NoopPipelineHooks) OnMeasureComplete(context.Context, int, int, time.Duration, error)   {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, string, []string)                     {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, []string, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

// registry is the set of hooks in effect. It is replaced wholesale on every
// change, so readers never see a half-updated set.
type registry struct {
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

var current atomic.Pointer[registry]

func init() { Reset() }

func update(fn func(r *registry)) {
	for {
		old := current.Load()
		next := *old
		fn(&next)
		if current.CompareAndSwap(old, &next) {
			return
		}
	}
}

// SetPipelineHooks registers pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(r *registry) { r.pipeline = h })
	}
}

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(r *registry) { r.cache = h })
	}
}

// SetHTTPHooks registers HTTP hooks. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(r *registry) { r.http = h })
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return current.Load().pipeline }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return current.Load().cache }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return current.Load().http }

// Reset restores every hook to its no-op default. Tests call it in cleanup.
func Reset() {
	current.Store(&registry{
		pipeline: NoopPipelineHooks{},
		cache:    NoopCacheHooks{},
		http:     NoopHTTPHooks{},
	})
}
