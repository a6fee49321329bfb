package imagemetrics

import (
	"bytes"
	"encoding/xml"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strconv"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/errors"
)

// Measure returns the intrinsic size of an encoded image. The name is only
// used to recognize SVG and to report errors.
func Measure(name string, data []byte) (Size, error) {
	if isSVG(name, data) {
		return measureSVG(name, data)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Size{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "measure %s", name)
	}
	return Size{Width: float64(cfg.Width), Height: float64(cfg.Height)}, nil
}

func isSVG(name string, data []byte) bool {
	if strings.EqualFold(filepath.Ext(name), ".svg") {
		return true
	}
	head := data[:min(len(data), 512)]
	return bytes.Contains(head, []byte("<svg"))
}

// measureSVG reads the root element only; the rest of the document is never
// parsed.
func measureSVG(name string, data []byte) (Size, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return Size{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "measure %s: no svg element", name)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "svg" {
			return Size{}, errors.New(errors.ErrCodeInvalidFormat, "measure %s: root element is <%s>", name, start.Name.Local)
		}
		return svgSize(name, start.Attr)
	}
}

func svgSize(name string, attrs []xml.Attr) (Size, error) {
	var w, h float64
	var viewBox string
	for _, a := range attrs {
		switch a.Name.Local {
		case "width":
			w = parseLength(a.Value)
		case "height":
			h = parseLength(a.Value)
		case "viewBox":
			viewBox = a.Value
		}
	}
	if w > 0 && h > 0 {
		return Size{Width: w, Height: h}, nil
	}
	fields := strings.FieldsFunc(viewBox, func(r rune) bool { return r == ' ' || r == ',' })
	if len(fields) == 4 {
		vw, err1 := strconv.ParseFloat(fields[2], 64)
		vh, err2 := strconv.ParseFloat(fields[3], 64)
		if err1 == nil && err2 == nil && vw > 0 && vh > 0 {
			return Size{Width: vw, Height: vh}, nil
		}
	}
	return Size{}, errors.New(errors.ErrCodeInvalidFormat, "measure %s: svg has no usable width/height or viewBox", name)
}

// parseLength reads a leading number from an SVG length such as "120px".
// Percentages carry no intrinsic size and yield 0.
func parseLength(s string) float64 {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		return 0
	}
	end := 0
	for end < len(s) && (s[end] == '.' || s[end] == '-' || s[end] == '+' || (s[end] >= '0' && s[end] <= '9')) {
		end++
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return v
}
