// Package render turns slide primitives into output files.
//
// # Overview
//
//   - Format conversion from SVG to PDF and PNG (this package)
//   - Output sinks for SVG, PNG, PDF, JSON and Markdown (in [sink])
//   - Document outlines as Graphviz diagrams (in [outline])
//
// # Format Conversion
//
// [ToPDF] and [ToRasterPNG] convert an SVG document with the external
// rsvg-convert tool (from librsvg). The PNG sink does not need it: it
// rasterizes primitives directly.
//
//	svg := sink.RenderSVG(frame)
//	pdf, err := render.ToPDF(svg)
//
// [Available] reports whether rsvg-convert is installed, so callers can
// skip PDF export up front instead of failing after the layout pass.
//
// [sink]: https://pkg.go.dev/github.com/jcoliz/LogoSlideMaker-sub000/pkg/render/sink
// [outline]: https://pkg.go.dev/github.com/jcoliz/LogoSlideMaker-sub000/pkg/render/outline
package render
