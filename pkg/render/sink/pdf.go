package sink

import (
	"context"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/render"
)

// RenderPDF renders the frame as PDF via SVG conversion. Images are always
// embedded since rsvg-convert reads the SVG from stdin.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, f Frame, images ImageLoader) ([]byte, error) {
	if images == nil {
		images = ReadFile
	}
	svg, err := RenderSVG(f, WithImages(images))
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}
