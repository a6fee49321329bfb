package layout

import (
	"fmt"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/definition"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/errors"
)

// geometry is the positioning basis of a box. Every box resolves to exactly
// one of explicitGeometry or containerGeometry.
type geometry interface {
	frame(ctx frameContext) (boxFrame, error)
}

// explicitGeometry places rows directly at X with the given width.
// A nil Y stacks the box below the previous one.
type explicitGeometry struct {
	X     float64
	Y     *float64
	Width float64
}

// containerGeometry places rows inside an outer rectangle, inset by padding.
// Boxes with a location resolve to this geometry using the location's rectangle.
type containerGeometry struct {
	X, Width float64
	Y        *float64
	Height   *float64
	NumRows  int
}

// frameContext carries what a geometry needs to resolve to inches.
type frameContext struct {
	box    definition.Box
	index  int
	layout definition.Layout
	render definition.Render
	// lastY is the largest Y laid out so far on the slide.
	lastY    float64
	hasLastY bool
}

// boxFrame is the resolved content area of a box.
type boxFrame struct {
	InnerX, InnerY, InnerWidth float64
	// Outer is the container rectangle, nil for explicit geometry.
	Outer   *Rect
	NumRows int
	padY    float64
}

// stackedY returns the inner Y of a box with no Y of its own.
func (c frameContext) stackedY() (float64, error) {
	if !c.hasLastY {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "%s: y is required on the first box", c.describe())
	}
	return c.lastY + c.layout.LineSpacing + c.layout.BoxSpacing, nil
}

func (c frameContext) describe() string {
	if c.box.Title != "" {
		return fmt.Sprintf("box %q", c.box.Title)
	}
	return fmt.Sprintf("box #%d", c.index)
}

func (c frameContext) basePadding() float64 {
	if c.box.Padding != nil {
		return *c.box.Padding
	}
	return c.layout.Padding
}

func (g explicitGeometry) frame(c frameContext) (boxFrame, error) {
	f := boxFrame{InnerX: g.X, InnerWidth: g.Width}
	if g.Y != nil {
		f.InnerY = *g.Y
		return f, nil
	}
	y, err := c.stackedY()
	if err != nil {
		return boxFrame{}, err
	}
	f.InnerY = y
	return f, nil
}

// frame insets the container: horizontally by padding plus half a text width
// so labels stay inside, vertically by padding plus half an icon.
func (g containerGeometry) frame(c frameContext) (boxFrame, error) {
	padY := c.basePadding()
	padX := c.box.ExtraPadding + padY

	f := boxFrame{
		InnerX:     g.X + padX + c.render.TextWidth/2,
		InnerWidth: g.Width - 2*padX - c.render.TextWidth,
		NumRows:    g.NumRows,
		padY:       padY,
	}

	var top float64
	if g.Y != nil {
		top = *g.Y
		f.InnerY = top + padY + c.render.IconSize/2
	} else {
		y, err := c.stackedY()
		if err != nil {
			return boxFrame{}, err
		}
		f.InnerY = y
		top = y - padY - c.render.IconSize/2
	}

	outer := Rect{X: g.X, Y: top, Width: g.Width}
	if g.Height != nil {
		outer.Height = *g.Height
	}
	f.Outer = &outer
	return f, nil
}

// resolveGeometry picks the box's positioning basis. A location wins over an
// outer container, which wins over explicit coordinates.
func resolveGeometry(def *definition.Definition, box definition.Box, index int) (geometry, error) {
	if box.Location != "" {
		loc, ok := def.Location(box.Page, box.Location)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "box #%d (%q): location %q not found on page %d", index, box.Title, box.Location, box.Page)
		}
		y := loc.Y
		g := containerGeometry{X: loc.X, Y: &y, Width: loc.Width, NumRows: loc.NumRows}
		if loc.Height > 0 {
			h := loc.Height
			g.Height = &h
		}
		return g, nil
	}

	if box.Outer != nil {
		return containerGeometry{X: box.Outer.X, Y: box.Outer.Y, Width: box.Outer.Width, Height: box.Outer.Height}, nil
	}

	g := explicitGeometry{X: def.Layout.DefaultX, Y: box.Y}
	if box.X != nil {
		g.X = *box.X
	}
	switch {
	case box.Width != nil:
		g.Width = *box.Width
	case def.Layout.DefaultWidth != nil:
		g.Width = *def.Layout.DefaultWidth
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "box #%d (%q): width is required when the layout has no default_width", index, box.Title)
	}
	return g, nil
}

// flow returns the rows to lay out and the minimum column count for each.
//
// With auto-flow, included entries of all declared rows are pooled (each
// declared row cut at its @end) and re-chunked into numRows rows of
// ceil(total/numRows) columns, raised to MinColumns. Entries keep their tags.
func flow(r resolver, box definition.Box, declared [][]string, numRows, minColumns int) ([][]string, int, error) {
	if !box.FlowEnabled() {
		return declared, minColumns, nil
	}

	var pooled []string
	for _, raws := range declared {
		entries, err := r.included(raws)
		if err != nil {
			return nil, 0, err
		}
		for _, e := range entries {
			pooled = append(pooled, e.Raw)
		}
	}

	rows := numRows
	if rows <= 0 {
		rows = len(declared)
	}
	if rows == 0 {
		return nil, 0, nil
	}

	columns := max((len(pooled)+rows-1)/rows, minColumns)
	if len(pooled) == 0 {
		return make([][]string, rows), columns, nil
	}

	out := make([][]string, 0, rows)
	for start := 0; start < len(pooled); start += columns {
		end := min(start+columns, len(pooled))
		out = append(out, pooled[start:end])
	}
	return out, columns, nil
}
