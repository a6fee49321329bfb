package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/definition"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/errors"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/layout"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/primitive"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/render"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/render/sink"
)

// renderJob is everything a format renderer may need for one slide.
type renderJob struct {
	def   *definition.Definition
	slide Slide
	frame sink.Frame
	opts  Options
}

type renderFunc func(ctx context.Context, job renderJob) ([]byte, error)

// renderers holds one entry per key of contentTypes.
var renderers = map[string]renderFunc{
	FormatSVG: func(_ context.Context, job renderJob) ([]byte, error) {
		var svgOpts []sink.SVGOption
		if job.opts.EmbedImages {
			svgOpts = append(svgOpts, sink.WithImages(sink.ReadFile))
		}
		return sink.RenderSVG(job.frame, svgOpts...)
	},
	FormatPNG: func(ctx context.Context, job renderJob) ([]byte, error) {
		return renderPNG(ctx, job.frame, job.opts.Scale)
	},
	FormatPDF: func(ctx context.Context, job renderJob) ([]byte, error) {
		return sink.RenderPDF(ctx, job.frame, sink.ReadFile)
	},
	FormatJSON: func(_ context.Context, job renderJob) ([]byte, error) {
		jsonOpts := []sink.JSONOption{sink.WithIndent()}
		if job.opts.RunID != "" {
			jsonOpts = append(jsonOpts, sink.WithRunID(job.opts.RunID))
		}
		return sink.RenderJSON(job.frame, jsonOpts...)
	},
	FormatMarkdown: func(_ context.Context, job renderJob) ([]byte, error) {
		return renderMarkdown(job.def, job.slide, job.opts)
	},
}

// RenderSlide generates one slide in each requested format. Formats render
// concurrently; the first failure cancels the rest.
func RenderSlide(ctx context.Context, def *definition.Definition, s Slide, opts Options) (map[string][]byte, error) {
	job := renderJob{def: def, slide: s, frame: sink.NewFrame(def, s.Layout, s.Primitives), opts: opts}

	for _, format := range opts.Formats {
		if _, ok := renderers[format]; !ok {
			return nil, errors.New(errors.ErrCodeUnsupported, "no renderer for format %q", format)
		}
	}

	var mu sync.Mutex
	artifacts := make(map[string][]byte, len(opts.Formats))
	g, ctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		fn := renderers[format]
		g.Go(func() error {
			data, err := fn(ctx, job)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

// renderPNG rasterizes natively unless the slide shows SVG logos and
// rsvg-convert is installed, in which case the SVG output is converted so
// those logos are drawn instead of outlined.
func renderPNG(ctx context.Context, frame sink.Frame, scale float64) ([]byte, error) {
	if !hasSVGImages(frame) || !render.Available() {
		return sink.RenderPNG(frame, sink.WithPNGImages(sink.ReadFile), sink.WithScale(scale))
	}
	svg, err := sink.RenderSVG(frame, sink.WithImages(sink.ReadFile))
	if err != nil {
		return nil, err
	}
	return render.ToRasterPNG(ctx, svg, scale)
}

func hasSVGImages(frame sink.Frame) bool {
	for _, p := range frame.Primitives {
		if p.Kind == primitive.KindImage && strings.EqualFold(filepath.Ext(p.Path), ".svg") {
			return true
		}
	}
	return false
}

func renderMarkdown(def *definition.Definition, s Slide, opts Options) ([]byte, error) {
	listings, err := GenerateListings(def, []definition.Variant{s.Variant}, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := layout.WriteMarkdown(&buf, def.Title, s.Layout.Language, listings); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
