package layout

import (
	"slices"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/definition"
)

// missingTitlePrefix starts the title of a logo synthesized for an unknown id.
const missingTitlePrefix = "Missing Logo: "

// LogoLayout is one computed placement. Coordinates are the logo's center,
// in document units (inches). A nil Logo is a placeholder that keeps the
// vertical slot of a row with nothing to draw.
type LogoLayout struct {
	ID               string
	Logo             *definition.Logo
	X, Y             float64
	DefaultTextWidth *float64
}

// IsPlaceholder reports whether the layout draws nothing.
func (l LogoLayout) IsPlaceholder() bool { return l.Logo == nil }

// TextLayout is a positioned block of text, such as a box title.
// X and Y are the top-left corner in inches.
type TextLayout struct {
	Text          string
	X, Y          float64
	Width, Height float64
}

// Rect is an axis-aligned rectangle in inches.
type Rect struct {
	X, Y, Width, Height float64
}

// Right returns the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// BoxLayout records the resolved frame of a box on the slide.
type BoxLayout struct {
	Title string
	// Outer is set for boxes positioned by an outer container or a location.
	Outer *Rect
	Inner Rect
}

// SlideLayout is everything computed for one variant.
type SlideLayout struct {
	Variant  definition.Variant
	Language string
	Dark     bool
	Logos    []LogoLayout
	Text     []TextLayout
	Boxes    []BoxLayout
	// Missing lists, in first-seen order, logo ids that were referenced but
	// not defined and were replaced by a synthesized placeholder.
	Missing []string
}

// LogoCount returns the number of drawn logos, not counting placeholders.
func (s SlideLayout) LogoCount() int {
	n := 0
	for _, l := range s.Logos {
		if !l.IsPlaceholder() {
			n++
		}
	}
	return n
}

// LookupLogo resolves a logo id. An unknown id yields a placeholder logo
// titled "Missing Logo: {id}" and synthesized = true; logos is never modified.
func LookupLogo(logos map[string]definition.Logo, id string) (logo definition.Logo, synthesized bool) {
	if l, ok := logos[id]; ok {
		return l, false
	}
	return definition.Logo{Title: missingTitlePrefix + id}, true
}

// missingSet collects synthesized ids without duplicates, preserving order.
type missingSet struct {
	ids []string
}

func (m *missingSet) add(id string) {
	if !slices.Contains(m.ids, id) {
		m.ids = append(m.ids, id)
	}
}
