package layout

import (
	"slices"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/definition"
)

// Option configures an [Engine].
type Option func(*Engine)

// WithLanguage overrides the variant's language for titles.
func WithLanguage(lang string) Option { return func(e *Engine) { e.language = lang } }

// WithDark forces dark mode regardless of the variant setting.
func WithDark() Option { return func(e *Engine) { e.dark = true } }

// Engine computes slide layouts from a definition. It never modifies the
// definition and holds no state between calls, so one Engine can serve many
// variants, including concurrently.
type Engine struct {
	def      *definition.Definition
	language string
	dark     bool
}

// New creates an engine over def.
func New(def *definition.Definition, opts ...Option) *Engine {
	e := &Engine{def: def}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Selected reports whether a box appears in the variant. Without a page
// filter only page-0 boxes appear.
func Selected(box definition.Box, v definition.Variant) bool {
	if len(v.Pages) == 0 {
		return box.Page == 0
	}
	return slices.Contains(v.Pages, box.Page)
}

func (e *Engine) languageFor(v definition.Variant) string {
	if e.language != "" {
		return e.language
	}
	return v.Language
}

func (e *Engine) newResolver(v definition.Variant, missing *missingSet) resolver {
	return resolver{logos: e.def.Logos, filter: NewFilter(v), missing: missing}
}

// Layout computes the slide for variant v. Selected boxes are laid out in
// declaration order, each stacking below the previous when it has no Y of its
// own. Loose top-level rows follow when the variant has no page filter.
func (e *Engine) Layout(v definition.Variant) (SlideLayout, error) {
	missing := &missingSet{}
	r := e.newResolver(v, missing)
	lang := e.languageFor(v)

	slide := SlideLayout{
		Variant:  v,
		Language: lang,
		Dark:     e.dark || v.Dark,
	}

	for i, box := range e.def.Boxes {
		if !Selected(box, v) {
			continue
		}
		logos, bl, err := e.layoutBox(r, box, i, lang, slide.Logos)
		if err != nil {
			return SlideLayout{}, err
		}
		slide.Logos = append(slide.Logos, logos...)
		slide.Boxes = append(slide.Boxes, bl)

		if title := box.DisplayTitle(lang); title != "" && bl.Outer != nil {
			slide.Text = append(slide.Text, TextLayout{
				Text:   title,
				X:      bl.Outer.X,
				Y:      bl.Outer.Y - e.def.Render.TitleHeight,
				Width:  bl.Outer.Width,
				Height: e.def.Render.TitleHeight,
			})
		}
	}

	if len(v.Pages) == 0 {
		for _, row := range e.def.Rows {
			logos, err := r.layoutRow(rowSpec{
				X:          row.X,
				Y:          row.Y,
				Width:      row.Width,
				MinColumns: row.MinColumns,
				Entries:    row.Logos,
			})
			if err != nil {
				return SlideLayout{}, err
			}
			slide.Logos = append(slide.Logos, logos...)
		}
	}

	slide.Missing = missing.ids
	return slide, nil
}

// layoutBox resolves a box's frame against what is already on the slide and
// lays out its rows, LineSpacing apart from the frame's inner Y.
func (e *Engine) layoutBox(r resolver, box definition.Box, index int, lang string, placed []LogoLayout) ([]LogoLayout, BoxLayout, error) {
	geo, err := resolveGeometry(e.def, box, index)
	if err != nil {
		return nil, BoxLayout{}, err
	}

	ctx := frameContext{box: box, index: index, layout: e.def.Layout, render: e.def.Render}
	for _, l := range placed {
		if !ctx.hasLastY || l.Y > ctx.lastY {
			ctx.lastY, ctx.hasLastY = l.Y, true
		}
	}

	f, err := geo.frame(ctx)
	if err != nil {
		return nil, BoxLayout{}, err
	}

	rows, minColumns, err := e.boxRows(r, box, f.NumRows)
	if err != nil {
		return nil, BoxLayout{}, err
	}

	var out []LogoLayout
	for i, entries := range rows {
		logos, err := r.layoutRow(rowSpec{
			X:          f.InnerX,
			Y:          f.InnerY + float64(i)*e.def.Layout.LineSpacing,
			Width:      f.InnerWidth,
			MinColumns: minColumns,
			Entries:    entries,
			TextWidth:  box.TextWidth,
		})
		if err != nil {
			return nil, BoxLayout{}, err
		}
		out = append(out, logos...)
	}

	bl := BoxLayout{
		Title: box.DisplayTitle(lang),
		Inner: Rect{X: f.InnerX, Y: f.InnerY, Width: f.InnerWidth, Height: float64(max(len(rows)-1, 0)) * e.def.Layout.LineSpacing},
	}
	if f.Outer != nil {
		outer := *f.Outer
		if outer.Height == 0 {
			outer.Height = e.fitHeight(f, len(rows))
		}
		bl.Outer = &outer
	}
	return out, bl, nil
}

// fitHeight sizes an outer rectangle that declared no height: down to the
// bottom of the last row's labels plus padding.
func (e *Engine) fitHeight(f boxFrame, rows int) float64 {
	rnd := e.def.Render
	lastRow := f.InnerY + float64(max(rows-1, 0))*e.def.Layout.LineSpacing
	bottom := lastRow + rnd.TextDistance + rnd.TextHeight/2 + f.padY
	return bottom - f.Outer.Y
}

// boxRows returns the rows of a box after optional auto-flow, and the minimum
// column count each row uses.
func (e *Engine) boxRows(r resolver, box definition.Box, locationRows int) ([][]string, int, error) {
	declared, err := box.Rows()
	if err != nil {
		return nil, 0, err
	}

	minColumns := box.MinColumns
	if minColumns == 0 {
		minColumns = e.def.Layout.MinColumns
	}

	numRows := box.NumRows
	if numRows == 0 {
		numRows = locationRows
	}
	return flow(r, box, declared, numRows, minColumns)
}
