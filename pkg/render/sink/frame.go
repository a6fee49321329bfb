package sink

import (
	"os"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/definition"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/layout"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/primitive"
)

// pointsPerInch converts font sizes in points to pixels at a given DPI.
const pointsPerInch = 72.0

// extentsColor outlines layout boxes when extents are drawn.
const extentsColor = "#FF00FF"

// Frame is one slide ready to draw.
type Frame struct {
	Title   string
	Variant string
	// Width and Height are the canvas size in pixels.
	Width, Height float64
	DPI           float64

	Background string
	FontColor  string
	FontName   string
	// FontSize is in pixels.
	FontSize float64

	Primitives []primitive.Primitive
	// Missing lists logo ids drawn as placeholders.
	Missing []string
}

// NewFrame assembles a frame for a laid-out slide, picking dark or light
// colors from the slide's mode.
func NewFrame(def *definition.Definition, slide layout.SlideLayout, ps []primitive.Primitive) Frame {
	r := def.Render
	f := Frame{
		Title:      def.Title,
		Variant:    slide.Variant.Name,
		Width:      r.SlideWidth * r.DPI,
		Height:     r.SlideHeight * r.DPI,
		DPI:        r.DPI,
		Background: r.BackgroundColor,
		FontColor:  r.FontColor,
		FontName:   r.FontName,
		FontSize:   r.FontSize * r.DPI / pointsPerInch,
		Primitives: ps,
		Missing:    slide.Missing,
	}
	if slide.Dark {
		f.Background = r.DarkBackgroundColor
		f.FontColor = r.DarkFontColor
	}
	return f
}

// ImageLoader returns the encoded bytes of an image file.
type ImageLoader func(path string) ([]byte, error)

// ReadFile loads images from the local file system.
func ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }
