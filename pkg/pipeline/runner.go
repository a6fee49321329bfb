package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/cache"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/definition"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/imagemetrics"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/layout"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/observability"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/primitive"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete measure → layout → render pipeline with caching
// for every selected variant of def.
func (r *Runner) Execute(ctx context.Context, def *definition.Definition, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}

	variants, err := SelectVariants(def, opts.Variants)
	if err != nil {
		return nil, err
	}
	result := &Result{RunID: opts.RunID}

	// Stage 1: Measure
	measureStart := time.Now()
	metrics, hits, err := r.MeasureWithCacheInfo(ctx, def)
	if err != nil {
		return nil, fmt.Errorf("measure: %w", err)
	}
	result.Stats.MeasureTime = time.Since(measureStart)
	result.Stats.ImageCount = len(metrics)
	result.CacheInfo.MetricsHits = hits

	r.Logger.Info("measured images",
		"images", len(metrics),
		"cache_hits", hits,
		"duration", result.Stats.MeasureTime)

	hooks := observability.Pipeline()
	for _, v := range variants {
		// Stage 2: Layout
		hooks.OnLayoutStart(ctx, v.Name)
		layoutStart := time.Now()
		slide, err := r.Layout(def, v, metrics, opts)
		layoutTime := time.Since(layoutStart)
		hooks.OnLayoutComplete(ctx, v.Name, slide.Layout.LogoCount(), layoutTime, err)
		if err != nil {
			return nil, fmt.Errorf("layout %s: %w", v.Name, err)
		}
		result.Stats.LayoutTime += layoutTime
		result.Stats.LogoCount += slide.Layout.LogoCount()

		// Stage 3: Render
		hooks.OnRenderStart(ctx, v.Name, opts.Formats)
		renderStart := time.Now()
		artifacts, hit, err := r.RenderWithCacheInfo(ctx, def, slide, opts)
		renderTime := time.Since(renderStart)
		hooks.OnRenderComplete(ctx, v.Name, opts.Formats, renderTime, err)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", v.Name, err)
		}
		result.Stats.RenderTime += renderTime
		if hit {
			result.CacheInfo.ArtifactHits++
		}
		slide.Artifacts = artifacts
		slide.Cached = hit
		result.Slides = append(result.Slides, slide)
	}

	r.Logger.Info("rendered slides",
		"run_id", result.RunID,
		"slides", len(result.Slides),
		"formats", opts.Formats,
		"duration", result.Stats.LayoutTime+result.Stats.RenderTime)

	return result, nil
}

// MeasureWithCacheInfo reads the size of every image def references and
// returns how many came from the cache.
func (r *Runner) MeasureWithCacheInfo(ctx context.Context, def *definition.Definition) (imagemetrics.Table, int, error) {
	paths := def.ImagePaths()
	hooks := observability.Pipeline()
	hooks.OnMeasureStart(ctx, len(paths))
	start := time.Now()

	loader := imagemetrics.NewLoader(r.Cache, r.Keyer, r.Logger)
	table, stats, err := loader.LoadWithStats(ctx, paths)
	hooks.OnMeasureComplete(ctx, len(paths), stats.CacheHits, time.Since(start), err)
	if err != nil {
		return nil, 0, err
	}
	return table, stats.CacheHits, nil
}

// Measure is a convenience wrapper that calls MeasureWithCacheInfo and discards the cache hit info.
func (r *Runner) Measure(ctx context.Context, def *definition.Definition) (imagemetrics.Table, error) {
	table, _, err := r.MeasureWithCacheInfo(ctx, def)
	return table, err
}

// Layout computes one variant's slide and its primitives. Missing logo ids
// are reported as warnings, not errors.
func (r *Runner) Layout(def *definition.Definition, v definition.Variant, metrics imagemetrics.Provider, opts Options) (Slide, error) {
	r.applyLogger(&opts)
	slide, err := GenerateSlide(def, v, metrics, opts)
	if err != nil {
		return Slide{}, err
	}
	for _, id := range slide.Layout.Missing {
		opts.Logger.Warn("logo not defined", "variant", v.Name, "id", id)
	}
	opts.Logger.Debug("computed layout",
		"variant", v.Name,
		"logos", slide.Layout.LogoCount(),
		"primitives", len(slide.Primitives))
	return slide, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, def *definition.Definition, s Slide, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	slideHash, err := hashSlide(def, s)
	if err != nil {
		return nil, false, fmt.Errorf("serialize slide for cache key: %w", err)
	}

	// Try to get all formats from cache
	hooks := observability.Cache()
	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(slideHash, opts.ArtifactKeyOpts(s.Layout, def.Render.DPI, format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			hooks.OnCacheHit(ctx, observability.KeyTypeArtifact)
			return artifacts, true, nil // All artifacts from cache
		}
	}
	hooks.OnCacheMiss(ctx, observability.KeyTypeArtifact)

	rendered, err := RenderSlide(ctx, def, s, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(slideHash, opts.ArtifactKeyOpts(s.Layout, def.Render.DPI, format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("cache artifact", "variant", s.Variant.Name, "format", format, "error", err)
			continue
		}
		hooks.OnCacheSet(ctx, observability.KeyTypeArtifact, len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, def *definition.Definition, s Slide, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, def, s, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// imageStamp identifies the on-disk version of an image.
type imageStamp struct {
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// hashSlide fingerprints everything that feeds a slide's artifacts: the
// layout, the primitives, the render settings, and the image files drawn.
func hashSlide(def *definition.Definition, s Slide) (string, error) {
	var stamps []imageStamp
	for _, p := range s.Primitives {
		if p.Kind != primitive.KindImage {
			continue
		}
		st := imageStamp{Path: p.Path}
		if fi, err := os.Stat(p.Path); err == nil {
			st.Size, st.ModTime = fi.Size(), fi.ModTime().UTC()
		}
		stamps = append(stamps, st)
	}

	data, err := json.Marshal(struct {
		Title      string                `json:"title"`
		Render     definition.Render     `json:"render"`
		Layout     layout.SlideLayout    `json:"layout"`
		Primitives []primitive.Primitive `json:"primitives"`
		Images     []imageStamp          `json:"images"`
	}{def.Title, def.Render, s.Layout, s.Primitives, stamps})
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}
