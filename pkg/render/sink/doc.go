// Package sink writes a slide's primitives in an output format.
//
// Every sink takes a [Frame]: the slide size, colors, font settings and the
// primitives produced by the primitive generator.
//
//   - SVG: vector output with images embedded as data URIs
//   - PNG: raster output drawn natively, no external tools
//   - PDF: SVG converted with rsvg-convert
//   - JSON: primitives with a run id, for other renderers and tests
//
// The PNG sink cannot rasterize SVG logos; it draws an outlined box in their
// place. Use the SVG or PDF sink when a document relies on SVG images.
package sink
