package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryDefaults(t *testing.T) {
	Reset()

	assert.IsType(t, NoopPipelineHooks{}, Pipeline())
	assert.IsType(t, NoopCacheHooks{}, Cache())
	assert.IsType(t, NoopHTTPHooks{}, HTTP())
}

func TestRegistrySetAndReset(t *testing.T) {
	t.Cleanup(Reset)

	c := &Counters{}
	SetPipelineHooks(c)
	SetCacheHooks(c)
	SetHTTPHooks(c)
	assert.Same(t, c, Pipeline())
	assert.Same(t, c, Cache())
	assert.Same(t, c, HTTP())

	SetPipelineHooks(nil)
	assert.Same(t, c, Pipeline(), "nil should be ignored")

	Reset()
	assert.IsType(t, NoopPipelineHooks{}, Pipeline())
}

func TestRegistryConcurrentUpdates(t *testing.T) {
	t.Cleanup(Reset)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetCacheHooks(&Counters{})
		}()
		go func() {
			defer wg.Done()
			Pipeline().OnLayoutStart(context.Background(), "Main")
		}()
	}
	wg.Wait()
	assert.IsType(t, &Counters{}, Cache())
	assert.IsType(t, NoopPipelineHooks{}, Pipeline())
}

func TestCounters(t *testing.T) {
	ctx := context.Background()
	var c Counters

	c.OnLayoutComplete(ctx, "Main", 4, time.Millisecond, nil)
	c.OnRenderComplete(ctx, "Main", []string{"svg"}, time.Millisecond, errors.New("boom"))
	c.OnCacheHit(ctx, KeyTypeMetrics)
	c.OnCacheHit(ctx, KeyTypeMetrics)
	c.OnCacheMiss(ctx, KeyTypeArtifact)
	c.OnCacheSet(ctx, KeyTypeArtifact, 100)
	c.OnRequest(ctx, "GET", "/")
	c.OnResponse(ctx, "GET", "/", 200, time.Millisecond)

	s := c.Snapshot()
	assert.Equal(t, 1, s.Layouts)
	assert.Equal(t, 1, s.Renders)
	assert.Equal(t, 1, s.Failures)
	assert.Equal(t, 2, s.Hits[KeyTypeMetrics])
	assert.Equal(t, 1, s.Misses[KeyTypeArtifact])
	assert.Equal(t, 100, s.BytesWritten)
	assert.Equal(t, 1, s.Requests)

	s.Hits[KeyTypeMetrics] = 99
	assert.Equal(t, 2, c.Snapshot().Hits[KeyTypeMetrics], "snapshot should be a copy")
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(logger)
	ctx := context.Background()

	h.OnLayoutStart(ctx, "Keynote")
	h.OnLayoutComplete(ctx, "Keynote", 7, time.Millisecond, nil)
	h.OnRenderComplete(ctx, "Keynote", []string{"png"}, time.Millisecond, errors.New("no fonts"))
	h.OnCacheSet(ctx, KeyTypeArtifact, 2048)

	out := buf.String()
	for _, want := range []string{"layout start", "variant=Keynote", "logos=7", "render failed", "no fonts", "bytes=2048"} {
		assert.Contains(t, out, want)
	}
}

func TestLogHooksQuietAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel}))

	h.OnMeasureComplete(context.Background(), 3, 1, time.Millisecond, nil)
	h.OnRequest(context.Background(), "GET", "/variants")
	require.Empty(t, strings.TrimSpace(buf.String()))
}
