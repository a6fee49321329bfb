package sink

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/errors"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/fonts"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/primitive"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	images ImageLoader
}

// WithImages embeds every image as a data URI using load. Without it images
// reference their file paths, which only resolve when the SVG is viewed next
// to the images.
func WithImages(load ImageLoader) SVGOption { return func(r *svgRenderer) { r.images = load } }

// RenderSVG draws the frame as an SVG document.
func RenderSVG(f Frame, opts ...SVGOption) ([]byte, error) {
	var r svgRenderer
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		f.Width, f.Height, f.Width, f.Height)
	if f.Title != "" || f.Variant != "" {
		buf.WriteString("  <title>")
		writeEscaped(&buf, titleOf(f))
		buf.WriteString("</title>\n")
	}
	renderStyle(&buf, f)
	fmt.Fprintf(&buf, `  <rect class="background" width="100%%" height="100%%" fill="%s"/>`+"\n", attr(f.Background))

	for _, p := range f.Primitives {
		if err := r.renderPrimitive(&buf, p); err != nil {
			return nil, err
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func titleOf(f Frame) string {
	switch {
	case f.Title == "":
		return f.Variant
	case f.Variant == "":
		return f.Title
	}
	return f.Title + " - " + f.Variant
}

func renderStyle(buf *bytes.Buffer, f Frame) {
	fmt.Fprintf(buf, "  <style>\n    text { font-family: %s; fill: %s; }\n", fonts.Family(f.FontName), f.FontColor)
	fmt.Fprintf(buf, "    .logo { font-size: %.1fpx; text-anchor: middle; dominant-baseline: middle; }\n", f.FontSize)
	fmt.Fprintf(buf, "    .box_title { font-size: %.1fpx; font-weight: bold; dominant-baseline: middle; }\n", f.FontSize*1.2)
	fmt.Fprintf(buf, "    .extents { fill: none; stroke: %s; stroke-width: 1; stroke-dasharray: 4 2; }\n  </style>\n", extentsColor)
}

func (r *svgRenderer) renderPrimitive(buf *bytes.Buffer, p primitive.Primitive) error {
	b := p.Bounds
	switch p.Kind {
	case primitive.KindImage:
		href, err := r.href(p.Path)
		if err != nil {
			return err
		}
		fmt.Fprintf(buf, `  <image x="%.2f" y="%.2f" width="%.2f" height="%.2f" preserveAspectRatio="xMidYMid meet" href="%s"`,
			b.X, b.Y, b.Width, b.Height, attr(href))
		if p.ID != "" {
			fmt.Fprintf(buf, ` data-logo="%s"`, attr(p.ID))
		}
		buf.WriteString("/>\n")

	case primitive.KindText:
		if p.Text == "" {
			return nil
		}
		x, y := b.Center()
		if p.Style == primitive.StyleBoxTitle {
			x = b.X
		}
		fmt.Fprintf(buf, `  <text class="%s" x="%.2f" y="%.2f">`, p.Style, x, y)
		writeEscaped(buf, p.Text)
		buf.WriteString("</text>\n")

	case primitive.KindRectangle:
		if p.Purpose == primitive.PurposeExtents {
			fmt.Fprintf(buf, `  <rect class="extents" x="%.2f" y="%.2f" width="%.2f" height="%.2f"/>`+"\n", b.X, b.Y, b.Width, b.Height)
			return nil
		}
		fmt.Fprintf(buf, `  <rect class="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f" fill="%s"/>`+"\n",
			p.Purpose, b.X, b.Y, b.Width, b.Height, b.Height*0.1, attr(p.Fill))
	}
	return nil
}

func (r *svgRenderer) href(path string) (string, error) {
	if r.images == nil {
		return filepath.ToSlash(path), nil
	}
	data, err := r.images(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeImageNotFound, err, "embed image %s", path)
	}
	return "data:" + mimeType(path, data) + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func mimeType(path string, data []byte) string {
	if filepath.Ext(path) == ".svg" {
		return "image/svg+xml"
	}
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return http.DetectContentType(data)
}

func writeEscaped(buf *bytes.Buffer, s string) {
	_ = xml.EscapeText(buf, []byte(s))
}

func attr(s string) string {
	var buf bytes.Buffer
	writeEscaped(&buf, s)
	return buf.String()
}
