package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/cache"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/definition"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/errors"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/observability"
)

const testDocument = `
title = "Partners"

[logos.red]
title = "Red"
path = "red.png"

[logos.blue]
title = "Blue"
alt_text = "Azure"

[[boxes]]
title = "Cloud"
y = 1.0
width = 4.0
logos = { "0" = ["red", "blue", "ghost"] }

[[variants]]
name = "Main"

[[variants]]
name = "Night"
dark = true
`

func writeDocument(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 8, 4))))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "red.png"), buf.Bytes(), 0644))

	path := filepath.Join(dir, "logos.toml")
	require.NoError(t, os.WriteFile(path, []byte(testDocument), 0644))
	return path
}

func loadDocument(t *testing.T) *definition.Definition {
	t.Helper()
	def, err := Load(writeDocument(t))
	require.NoError(t, err)
	return def
}

func TestFormats(t *testing.T) {
	tests := []struct {
		format string
		valid  bool
		mime   string
	}{
		{"svg", true, "image/svg+xml"},
		{"png", true, "image/png"},
		{"pdf", true, "application/pdf"},
		{"json", true, "application/json"},
		{"md", true, "text/markdown; charset=utf-8"},
		{"pptx", false, ""},
		{"SVG", false, ""},
		{"", false, ""},
	}
	for _, tt := range tests {
		if got := IsFormat(tt.format); got != tt.valid {
			t.Errorf("IsFormat(%q) = %v, want %v", tt.format, got, tt.valid)
		}
		if got := ContentType(tt.format); got != tt.mime {
			t.Errorf("ContentType(%q) = %q, want %q", tt.format, got, tt.mime)
		}
	}

	if got := FormatNames(); !slices.Equal(got, []string{"json", "md", "pdf", "png", "svg"}) {
		t.Errorf("FormatNames() = %v", got)
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "md"}); err != nil {
		t.Errorf("valid formats: %v", err)
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("no formats: %v", err)
	}
	err := ValidateFormats([]string{"svg", "pptx"})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("unknown format: %v", err)
	}
}

func TestRenderDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateForRender(); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(opts.Formats, []string{FormatSVG}) {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %g, want %g", opts.Scale, DefaultScale)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discarding logger")
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Scale: 2}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	formats, scale := opts.Formats, opts.Scale

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if len(opts.Formats) != len(formats) || opts.Scale != scale {
		t.Error("Options changed on second call")
	}
}

func TestOptionsScaleBounds(t *testing.T) {
	for _, scale := range []float64{-1, MaxScale + 1} {
		opts := Options{Scale: scale}
		if err := opts.ValidateForRender(); err == nil {
			t.Errorf("Scale %g should fail", scale)
		}
	}
}

func TestSelectVariants(t *testing.T) {
	def := loadDocument(t)

	all, err := SelectVariants(def, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	one, err := SelectVariants(def, []string{"Night"})
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.True(t, one[0].Dark)

	_, err = SelectVariants(def, []string{"Nope"})
	assert.True(t, errors.Is(err, errors.ErrCodeVariantNotFound))
}

func TestExecute(t *testing.T) {
	def := loadDocument(t)
	runner := NewRunner(nil, nil, nil)

	result, err := runner.Execute(context.Background(), def, Options{
		Formats: []string{FormatSVG, FormatJSON, FormatMarkdown},
	})
	require.NoError(t, err)
	require.Len(t, result.Slides, 2)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 1, result.Stats.ImageCount)
	assert.Equal(t, 6, result.Stats.LogoCount)

	main := result.Slides[0]
	assert.Equal(t, "Main", main.Variant.Name)
	assert.Equal(t, []string{"ghost"}, main.Layout.Missing)

	svg := string(main.Artifacts[FormatSVG])
	assert.Contains(t, svg, "<svg")
	assert.Contains(t, svg, "Red")
	assert.Contains(t, svg, "Missing Logo: ghost")

	var exported struct {
		RunID   string `json:"run_id"`
		Variant string `json:"variant"`
	}
	require.NoError(t, json.Unmarshal(main.Artifacts[FormatJSON], &exported))
	assert.Equal(t, result.RunID, exported.RunID)
	assert.Equal(t, "Main", exported.Variant)

	md := string(main.Artifacts[FormatMarkdown])
	assert.True(t, strings.HasPrefix(md, "# Partners\n"))
	assert.Contains(t, md, "### Cloud")
	assert.Contains(t, md, "* Azure: Blue")

	night := result.Slides[1]
	assert.True(t, night.Layout.Dark)
	assert.Contains(t, string(night.Artifacts[FormatSVG]), def.Render.DarkBackgroundColor)
}

func TestExecuteSelectedVariant(t *testing.T) {
	def := loadDocument(t)
	result, err := NewRunner(nil, nil, nil).Execute(context.Background(), def, Options{Variants: []string{"Night"}})
	require.NoError(t, err)
	require.Len(t, result.Slides, 1)
	assert.Equal(t, "Night", result.Slides[0].Variant.Name)
	assert.Contains(t, result.Slides[0].Artifacts, FormatSVG)
}

func TestExecuteCachesArtifacts(t *testing.T) {
	def := loadDocument(t)
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	ctx := context.Background()
	first, err := runner.Execute(ctx, def, Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, first.CacheInfo.MetricsHits)
	assert.Equal(t, 0, first.CacheInfo.ArtifactHits)
	assert.False(t, first.Slides[0].Cached)

	second, err := runner.Execute(ctx, def, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, second.CacheInfo.MetricsHits)
	assert.Equal(t, 2, second.CacheInfo.ArtifactHits)
	assert.True(t, second.Slides[0].Cached)
	assert.Equal(t, first.Slides[0].Artifacts[FormatSVG], second.Slides[0].Artifacts[FormatSVG])

	refreshed, err := runner.Execute(ctx, def, Options{Refresh: true})
	require.NoError(t, err)
	assert.Equal(t, 0, refreshed.CacheInfo.ArtifactHits)

	dark, err := runner.Execute(ctx, def, Options{Dark: true, Variants: []string{"Main"}})
	require.NoError(t, err)
	assert.Equal(t, 0, dark.CacheInfo.ArtifactHits, "forcing dark mode must not reuse light artifacts")
}

func TestExecuteMissingImage(t *testing.T) {
	def := loadDocument(t)
	red := def.Logos["red"]
	red.Path = filepath.Join(t.TempDir(), "gone.png")
	def.Logos["red"] = red

	_, err := NewRunner(nil, nil, nil).Execute(context.Background(), def, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeImageNotFound), "got %v", err)
}

func TestExecuteInvalidOptions(t *testing.T) {
	def := loadDocument(t)
	_, err := NewRunner(nil, nil, nil).Execute(context.Background(), def, Options{Formats: []string{"gif"}})
	assert.Error(t, err)
}

func TestRenderSlideUnsupportedFormat(t *testing.T) {
	def := loadDocument(t)
	slide, err := GenerateSlide(def, def.Variants[0], nil, Options{})
	require.NoError(t, err)

	_, err = RenderSlide(context.Background(), def, slide, Options{Formats: []string{"gif"}})
	assert.Error(t, err)
}

func TestParseResolvesPaths(t *testing.T) {
	def, err := Parse([]byte(testDocument), definition.FormatTOML, "/decks")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/decks", "red.png"), def.Logos["red"].Path)
	assert.Empty(t, def.Logos["blue"].Path)
}

type countingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks

	mu       sync.Mutex
	layouts  []string
	renders  int
	measured int
	hits     map[string]int
	misses   map[string]int
}

func (h *countingHooks) OnMeasureComplete(_ context.Context, n, _ int, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.measured += n
}

func (h *countingHooks) OnLayoutComplete(_ context.Context, variant string, _ int, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.layouts = append(h.layouts, variant)
}

func (h *countingHooks) OnRenderComplete(context.Context, string, []string, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.renders++
}

func (h *countingHooks) OnCacheHit(_ context.Context, keyType string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits[keyType]++
}

func (h *countingHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.misses[keyType]++
}

func TestExecuteReportsHooks(t *testing.T) {
	hooks := &countingHooks{hits: map[string]int{}, misses: map[string]int{}}
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	def := loadDocument(t)
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	runner := NewRunner(c, nil, nil)

	ctx := context.Background()
	_, err = runner.Execute(ctx, def, Options{})
	require.NoError(t, err)
	_, err = runner.Execute(ctx, def, Options{})
	require.NoError(t, err)

	assert.Equal(t, 2, hooks.measured)
	assert.Equal(t, []string{"Main", "Night", "Main", "Night"}, hooks.layouts)
	assert.Equal(t, 4, hooks.renders)
	assert.Equal(t, 1, hooks.misses[observability.KeyTypeMetrics])
	assert.Equal(t, 1, hooks.hits[observability.KeyTypeMetrics])
	assert.Equal(t, 2, hooks.misses[observability.KeyTypeArtifact])
	assert.Equal(t, 2, hooks.hits[observability.KeyTypeArtifact])
}
