// Package pipeline provides the complete slide pipeline for LogoSlideMaker.
//
// This package implements the load → measure → layout → render pipeline used
// by the CLI and the preview server. Centralizing it keeps both entry points
// producing identical slides from the same document.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: Parse the TOML or YAML document and resolve image paths
//  2. Measure: Read every referenced image's intrinsic size (cached by content)
//  3. Layout: Compute logo and title positions per variant, then primitives
//  4. Render: Generate output in various formats (SVG, PNG, PDF, JSON, Markdown)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	def, err := pipeline.Load("logos.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Execute(ctx, def, pipeline.Options{Formats: []string{"svg"}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Slides[0].Artifacts["svg"]
//
// Run individual stages:
//
//	metrics, err := runner.Measure(ctx, def)
//	slide, err := runner.Layout(def, variant, metrics, opts)
//	artifacts, err := runner.Render(ctx, def, slide, opts)
package pipeline

import (
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/cache"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/definition"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/errors"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/layout"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/primitive"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultScale is the PNG supersampling factor.
	DefaultScale = 1.0

	// MaxScale bounds PNG supersampling so a request cannot allocate an
	// unbounded canvas.
	MaxScale = 8.0
)

// Output formats.
const (
	FormatSVG      = "svg"
	FormatPNG      = "png"
	FormatPDF      = "pdf"
	FormatJSON     = "json"
	FormatMarkdown = "md"
)

// contentTypes doubles as the set of supported formats.
var contentTypes = map[string]string{
	FormatSVG:      "image/svg+xml",
	FormatPNG:      "image/png",
	FormatPDF:      "application/pdf",
	FormatJSON:     "application/json",
	FormatMarkdown: "text/markdown; charset=utf-8",
}

// IsFormat reports whether f names a supported output format. Names are
// lowercase and match file extensions.
func IsFormat(f string) bool {
	_, ok := contentTypes[f]
	return ok
}

// ContentType returns the MIME type served for format, or "" when the
// format is unknown.
func ContentType(format string) string { return contentTypes[format] }

// FormatNames returns the supported formats, sorted.
func FormatNames() []string {
	return slices.Sorted(maps.Keys(contentTypes))
}

// ValidateFormats checks that every entry of formats is supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if !IsFormat(f) {
			return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want one of %s)", f, strings.Join(FormatNames(), ", "))
		}
	}
	return nil
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the slide pipeline.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Variant selection; empty means every variant in the document.
	Variants []string `json:"variants,omitempty"`

	// Layout options
	Language string `json:"language,omitempty"` // Overrides each variant's language
	Dark     bool   `json:"dark,omitempty"`     // Forces dark mode for every variant

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Extents     bool     `json:"extents,omitempty"`      // Outline each box's frame
	EmbedImages bool     `json:"embed_images,omitempty"` // Inline images into SVG output
	Scale       float64  `json:"scale,omitempty"`        // PNG supersampling
	Refresh     bool     `json:"refresh,omitempty"`      // Bypass the artifact cache

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
	RunID  string      `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and JSON exports.
	RunID string

	// Slides holds one entry per rendered variant, in document order.
	Slides []Slide

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Slide is one rendered variant.
type Slide struct {
	Variant    definition.Variant
	Layout     layout.SlideLayout
	Primitives []primitive.Primitive

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte
	// Cached is true when every artifact came from the cache.
	Cached bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ImageCount  int
	LogoCount   int
	MeasureTime time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	MetricsHits  int // Images whose size came from cache
	ArtifactHits int // Slides whose artifacts all came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults prepares o for a full pipeline run. Later calls are
// no-ops, so callers further down may call it again safely.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForRender fills the render defaults (svg, unit scale, a silent
// logger) and checks the formats and the scale.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Scale < 0 || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale %g out of range (0, %g]", o.Scale, MaxScale)
	}
	return ValidateFormats(o.Formats)
}

// LayoutOptions returns the engine options implied by o.
func (o *Options) LayoutOptions() []layout.Option {
	var opts []layout.Option
	if o.Language != "" {
		opts = append(opts, layout.WithLanguage(o.Language))
	}
	if o.Dark {
		opts = append(opts, layout.WithDark())
	}
	return opts
}

// ArtifactKeyOpts returns cache key options for rendering slide in format.
func (o *Options) ArtifactKeyOpts(slide layout.SlideLayout, dpi float64, format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Variant:  slide.Variant.Name,
		Language: slide.Language,
		Dark:     slide.Dark,
		Extents:  o.Extents,
		DPI:      dpi * o.Scale,
	}
}
