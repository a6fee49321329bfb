// Package outline draws a document's structure as a Graphviz diagram.
//
// Each variant points at the boxes it shows, and each box at the logos it
// shows in that variant. Masked entries point at the mask logo, so the
// diagram answers "which slide shows what" at a glance.
//
//	dot, err := outline.ToDOT(def, outline.Options{})
//	svg, err := outline.RenderSVG(ctx, dot)
//
// SVG rendering runs Graphviz in-process through
// [github.com/goccy/go-graphviz]; no system Graphviz install is needed.
package outline
