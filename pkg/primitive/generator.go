package primitive

import (
	"math"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/definition"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/imagemetrics"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/layout"
)

// backgroundInset is how far a logo backdrop extends past the icon, as a
// fraction of the icon size.
const backgroundInset = 0.1

// Option configures a [Generator].
type Option func(*Generator)

// WithExtents adds outline rectangles around every image, label and box.
func WithExtents(on bool) Option { return func(g *Generator) { g.extents = on } }

// Generator turns layouts into pixel-space primitives.
type Generator struct {
	render  definition.Render
	metrics imagemetrics.Provider
	extents bool
}

// NewGenerator creates a generator. A nil metrics provider treats every
// image as square.
func NewGenerator(render definition.Render, metrics imagemetrics.Provider, opts ...Option) *Generator {
	g := &Generator{render: render, metrics: metrics}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// drawContext carries the per-slide mode into logo generation.
type drawContext struct {
	lang string
	dark bool
}

// Logo generates the primitives for one placement: an image and its label,
// preceded by a backdrop on dark slides for logos that ask for one. A
// placeholder yields nothing. An image path the metrics provider does not
// know fails with IMAGE_NOT_FOUND.
func (g *Generator) Logo(l layout.LogoLayout, lang string, dark bool) ([]Primitive, error) {
	return g.logo(l, drawContext{lang: lang, dark: dark})
}

func (g *Generator) logo(l layout.LogoLayout, dc drawContext) ([]Primitive, error) {
	if l.IsPlaceholder() {
		return nil, nil
	}
	logo := l.Logo
	dpi := g.render.DPI
	cx, cy := l.X*dpi, l.Y*dpi

	var out []Primitive
	if path := logo.ImagePath(dc.dark); path != "" {
		aspect, err := g.aspect(path)
		if err != nil {
			return nil, err
		}
		wf := math.Sqrt(aspect)
		hf := 1 / wf
		size := g.render.IconSize * logo.EffectiveScale() * dpi
		img := Primitive{
			Kind:   KindImage,
			Bounds: centered(cx, cy, size*wf, size*hf),
			Path:   path,
			ID:     l.ID,
		}
		if dc.dark && logo.Background {
			out = append(out, Primitive{
				Kind:    KindRectangle,
				Purpose: PurposeBackground,
				Bounds:  img.Bounds.Inset(-backgroundInset * g.render.IconSize * dpi),
				Fill:    g.render.LogoBackgroundColor,
				ID:      l.ID,
			})
		}
		out = append(out, img)
	}

	text := Primitive{
		Kind:   KindText,
		Style:  StyleLogo,
		Bounds: centered(cx, cy+g.render.TextDistance*dpi, g.textWidth(l)*dpi, g.render.TextHeight*dpi),
		Text:   logo.DisplayTitle(dc.lang),
		ID:     l.ID,
	}
	out = append(out, text)

	if g.extents {
		out = append(out, g.outlines(out)...)
	}
	return out, nil
}

// aspect returns width/height for path. A provider answer that is not a
// positive number counts as unknown and yields 1.
func (g *Generator) aspect(path string) (float64, error) {
	if g.metrics == nil {
		return 1, nil
	}
	a, err := g.metrics.AspectRatio(path)
	if err != nil {
		return 0, err
	}
	if !(a > 0) || math.IsInf(a, 0) {
		return 1, nil
	}
	return a, nil
}

// textWidth picks the label width in inches: the logo's own, then the box's,
// then the document default.
func (g *Generator) textWidth(l layout.LogoLayout) float64 {
	switch {
	case l.Logo.TextWidth != nil:
		return *l.Logo.TextWidth
	case l.DefaultTextWidth != nil:
		return *l.DefaultTextWidth
	}
	return g.render.TextWidth
}

func (g *Generator) outlines(ps []Primitive) []Primitive {
	out := make([]Primitive, 0, len(ps))
	for _, p := range ps {
		if p.Purpose != PurposeBase {
			continue
		}
		out = append(out, Primitive{Kind: KindRectangle, Purpose: PurposeExtents, Bounds: p.Bounds, ID: p.ID})
	}
	return out
}

// Title generates a box title.
func (g *Generator) Title(t layout.TextLayout) []Primitive {
	dpi := g.render.DPI
	p := Primitive{
		Kind:   KindText,
		Style:  StyleBoxTitle,
		Bounds: Rect{X: t.X * dpi, Y: t.Y * dpi, Width: t.Width * dpi, Height: t.Height * dpi},
		Text:   t.Text,
	}
	out := []Primitive{p}
	if g.extents {
		out = append(out, g.outlines(out)...)
	}
	return out
}

// Slide generates every primitive of a slide: box outlines when extents are
// on, then box titles, then logos in layout order.
func (g *Generator) Slide(s layout.SlideLayout) ([]Primitive, error) {
	dc := drawContext{lang: s.Language, dark: s.Dark}
	dpi := g.render.DPI

	var out []Primitive
	if g.extents {
		for _, b := range s.Boxes {
			if b.Outer == nil {
				continue
			}
			out = append(out, Primitive{
				Kind:    KindRectangle,
				Purpose: PurposeExtents,
				Bounds:  Rect{X: b.Outer.X * dpi, Y: b.Outer.Y * dpi, Width: b.Outer.Width * dpi, Height: b.Outer.Height * dpi},
			})
		}
	}
	for _, t := range s.Text {
		out = append(out, g.Title(t)...)
	}
	for _, l := range s.Logos {
		ps, err := g.logo(l, dc)
		if err != nil {
			return nil, err
		}
		out = append(out, ps...)
	}
	return out, nil
}
