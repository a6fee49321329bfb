package primitive

import "math"

// Kind is what a primitive draws.
type Kind int

const (
	KindImage Kind = iota
	KindText
	KindRectangle
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindText:
		return "text"
	case KindRectangle:
		return "rectangle"
	}
	return "unknown"
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Purpose says why a primitive exists.
type Purpose int

const (
	// PurposeBase is content: logos, labels, titles.
	PurposeBase Purpose = iota
	// PurposeBackground is a backdrop drawn beneath a logo on dark slides.
	PurposeBackground
	// PurposeExtents outlines a bounding box for layout debugging.
	PurposeExtents
)

func (p Purpose) String() string {
	switch p {
	case PurposeBase:
		return "base"
	case PurposeBackground:
		return "background"
	case PurposeExtents:
		return "extents"
	}
	return "unknown"
}

// MarshalText encodes the purpose by name.
func (p Purpose) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Style selects text formatting.
type Style int

const (
	StyleLogo Style = iota
	StyleBoxTitle
)

func (s Style) String() string {
	switch s {
	case StyleLogo:
		return "logo"
	case StyleBoxTitle:
		return "box_title"
	}
	return "unknown"
}

// MarshalText encodes the style by name.
func (s Style) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Rect is an axis-aligned rectangle in pixels; X and Y are the top-left corner.
type Rect struct {
	X, Y, Width, Height float64
}

// centered builds a rectangle of the given size around (cx, cy).
func centered(cx, cy, w, h float64) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, Width: w, Height: h}
}

// Center returns the midpoint.
func (r Rect) Center() (x, y float64) { return r.X + r.Width/2, r.Y + r.Height/2 }

// Right returns the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Inset shrinks the rectangle by d on every side; a negative d grows it.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, Width: math.Max(r.Width-2*d, 0), Height: math.Max(r.Height-2*d, 0)}
}

// Union returns the smallest rectangle covering both.
func (r Rect) Union(o Rect) Rect {
	x, y := math.Min(r.X, o.X), math.Min(r.Y, o.Y)
	return Rect{X: x, Y: y, Width: math.Max(r.Right(), o.Right()) - x, Height: math.Max(r.Bottom(), o.Bottom()) - y}
}

// Primitive is one drawable element of a slide. Exactly one of Path (images),
// Text (text) or neither (rectangles) is set.
type Primitive struct {
	Kind    Kind    `json:"kind"`
	Purpose Purpose `json:"purpose"`
	Style   Style   `json:"style"`
	Bounds  Rect    `json:"bounds"`
	// Path is the image file for KindImage.
	Path string `json:"path,omitempty"`
	// Text is the content for KindText.
	Text string `json:"text,omitempty"`
	// Fill is a CSS color for rectangles; empty means outline only.
	Fill string `json:"fill,omitempty"`
	// ID is the logo id the primitive was generated from, if any.
	ID string `json:"id,omitempty"`
}

// Bounds returns the rectangle covering every primitive.
func Bounds(ps []Primitive) Rect {
	if len(ps) == 0 {
		return Rect{}
	}
	out := ps[0].Bounds
	for _, p := range ps[1:] {
		out = out.Union(p.Bounds)
	}
	return out
}
