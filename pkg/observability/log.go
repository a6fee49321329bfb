package observability

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event as a debug line. It implements all three hook
// interfaces, so one value can be registered everywhere.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log through logger, or the default logger
// when it is nil.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger.WithPrefix("hooks")}
}

func (h *LogHooks) OnMeasureStart(_ context.Context, imageCount int) {
	h.logger.Debug("measure start", "images", imageCount)
}

func (h *LogHooks) OnMeasureComplete(_ context.Context, imageCount, cacheHits int, d time.Duration, err error) {
	h.done("measure", err, "images", imageCount, "cache_hits", cacheHits, "duration", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, variant string) {
	h.logger.Debug("layout start", "variant", variant)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, variant string, logoCount int, d time.Duration, err error) {
	h.done("layout", err, "variant", variant, "logos", logoCount, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, variant string, formats []string) {
	h.logger.Debug("render start", "variant", variant, "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, variant string, formats []string, d time.Duration, err error) {
	h.done("render", err, "variant", variant, "formats", formats, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) done(stage string, err error, keyvals ...any) {
	if err != nil {
		h.logger.Warn(stage+" failed", append(keyvals, "error", err)...)
		return
	}
	h.logger.Debug(stage+" done", keyvals...)
}

// Counters tallies events. The zero value is ready to use and safe for
// concurrent callers.
type Counters struct {
	NoopPipelineHooks
	NoopHTTPHooks

	mu       sync.Mutex
	layouts  int
	renders  int
	failures int
	hits     map[string]int
	misses   map[string]int
	written  int
	requests int
}

// CounterSnapshot is a point-in-time copy of [Counters].
type CounterSnapshot struct {
	Layouts      int
	Renders      int
	Failures     int
	Hits         map[string]int
	Misses       map[string]int
	BytesWritten int
	Requests     int
}

func (c *Counters) OnLayoutComplete(_ context.Context, _ string, _ int, _ time.Duration, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.layouts++
	if err != nil {
		c.failures++
	}
}

func (c *Counters) OnRenderComplete(_ context.Context, _ string, _ []string, _ time.Duration, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renders++
	if err != nil {
		c.failures++
	}
}

func (c *Counters) OnCacheHit(_ context.Context, keyType string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hits == nil {
		c.hits = map[string]int{}
	}
	c.hits[keyType]++
}

func (c *Counters) OnCacheMiss(_ context.Context, keyType string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.misses == nil {
		c.misses = map[string]int{}
	}
	c.misses[keyType]++
}

func (c *Counters) OnCacheSet(_ context.Context, _ string, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.written += size
}

func (c *Counters) OnRequest(context.Context, string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests++
}

// Snapshot returns the current totals.
func (c *Counters) Snapshot() CounterSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := CounterSnapshot{
		Layouts:      c.layouts,
		Renders:      c.renders,
		Failures:     c.failures,
		Hits:         make(map[string]int, len(c.hits)),
		Misses:       make(map[string]int, len(c.misses)),
		BytesWritten: c.written,
		Requests:     c.requests,
	}
	for k, v := range c.hits {
		s.Hits[k] = v
	}
	for k, v := range c.misses {
		s.Misses[k] = v
	}
	return s
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
	_ PipelineHooks = (*Counters)(nil)
	_ CacheHooks    = (*Counters)(nil)
	_ HTTPHooks     = (*Counters)(nil)
)
