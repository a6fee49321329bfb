package sink

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/font"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/errors"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/fonts"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/primitive"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	images ImageLoader
	scale  float64
	faces  map[float64]font.Face
}

// WithPNGImages sets how image files are read. The default reads from disk.
func WithPNGImages(load ImageLoader) PNGOption {
	return func(r *pngRenderer) { r.images = load }
}

// WithScale sets the PNG scale factor (default 1.0).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG rasterizes the frame.
func RenderPNG(f Frame, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{images: ReadFile, scale: 1.0, faces: map[float64]font.Face{}}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = 1
	}

	w, h := int(math.Ceil(f.Width*r.scale)), int(math.Ceil(f.Height*r.scale))
	dc := gg.NewContext(max(w, 1), max(h, 1))
	dc.SetHexColor(f.Background)
	dc.Clear()

	for _, p := range f.Primitives {
		if err := r.draw(dc, f, p); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func (r *pngRenderer) rect(b primitive.Rect) (x, y, w, h float64) {
	return b.X * r.scale, b.Y * r.scale, b.Width * r.scale, b.Height * r.scale
}

func (r *pngRenderer) draw(dc *gg.Context, f Frame, p primitive.Primitive) error {
	x, y, w, h := r.rect(p.Bounds)
	switch p.Kind {
	case primitive.KindImage:
		return r.drawImage(dc, f, p.Path, x, y, w, h)

	case primitive.KindText:
		if p.Text == "" {
			return nil
		}
		size := f.FontSize * r.scale
		if p.Style == primitive.StyleBoxTitle {
			size *= 1.2
		}
		dc.SetFontFace(r.face(f.FontName, size))
		dc.SetHexColor(f.FontColor)
		if p.Style == primitive.StyleBoxTitle {
			dc.DrawStringAnchored(p.Text, x, y+h/2, 0, 0.5)
			return nil
		}
		dc.DrawStringWrapped(p.Text, x+w/2, y+h/2, 0.5, 0.5, w, 1.1, gg.AlignCenter)

	case primitive.KindRectangle:
		if p.Purpose == primitive.PurposeExtents {
			dc.SetHexColor(extentsColor)
			dc.SetLineWidth(1)
			dc.SetDash(4, 2)
			dc.DrawRectangle(x, y, w, h)
			dc.Stroke()
			dc.SetDash()
			return nil
		}
		dc.SetHexColor(p.Fill)
		dc.DrawRoundedRectangle(x, y, w, h, h*0.1)
		dc.Fill()
	}
	return nil
}

func (r *pngRenderer) drawImage(dc *gg.Context, f Frame, path string, x, y, w, h float64) error {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		dc.SetHexColor(f.FontColor)
		dc.SetLineWidth(1)
		dc.DrawRectangle(x, y, w, h)
		dc.Stroke()
		return nil
	}

	data, err := r.images(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeImageNotFound, err, "read image %s", path)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode image %s", path)
	}

	fit := imaging.Resize(img, max(int(math.Round(w)), 1), max(int(math.Round(h)), 1), imaging.Lanczos)
	dc.DrawImageAnchored(fit, int(math.Round(x+w/2)), int(math.Round(y+h/2)), 0.5, 0.5)
	return nil
}

// face returns a cached face for the size, loading it on first use.
func (r *pngRenderer) face(name string, size float64) font.Face {
	if f, ok := r.faces[size]; ok {
		return f
	}
	f, _ := fonts.Face(name, size)
	r.faces[size] = f
	return f
}
