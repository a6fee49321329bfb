package sink

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/primitive"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	runID  string
	indent bool
}

// WithRunID records id instead of a fresh random one, so several outputs of
// one run can be correlated.
func WithRunID(id string) JSONOption { return func(r *jsonRenderer) { r.runID = id } }

// WithIndent pretty-prints the output.
func WithIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

type jsonOutput struct {
	RunID      string                `json:"run_id"`
	Title      string                `json:"title,omitempty"`
	Variant    string                `json:"variant"`
	Width      float64               `json:"width"`
	Height     float64               `json:"height"`
	DPI        float64               `json:"dpi"`
	Background string                `json:"background"`
	FontColor  string                `json:"font_color"`
	FontName   string                `json:"font_name,omitempty"`
	FontSize   float64               `json:"font_size"`
	Primitives []primitive.Primitive `json:"primitives"`
	Missing    []string              `json:"missing,omitempty"`
}

// RenderJSON encodes the frame and its primitives.
func RenderJSON(f Frame, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}
	if r.runID == "" {
		r.runID = uuid.NewString()
	}

	out := jsonOutput{
		RunID:      r.runID,
		Title:      f.Title,
		Variant:    f.Variant,
		Width:      f.Width,
		Height:     f.Height,
		DPI:        f.DPI,
		Background: f.Background,
		FontColor:  f.FontColor,
		FontName:   f.FontName,
		FontSize:   f.FontSize,
		Primitives: f.Primitives,
		Missing:    f.Missing,
	}
	if out.Primitives == nil {
		out.Primitives = []primitive.Primitive{}
	}
	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}
