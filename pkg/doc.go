// Package pkg provides the libraries behind LogoSlideMaker.
//
// # Overview
//
// LogoSlideMaker turns a document of logos, titled boxes, and variants into
// laid-out slides. Every variant is a filtered, optionally masked, localized,
// or dark view of the same logos, and renders as its own slide.
//
// The data flow:
//
//	TOML / YAML document
//	         ↓
//	    [definition] (parse, defaults, validation)
//	         ↓
//	    [imagemetrics] (image sizes, cached by content)
//	         ↓
//	    [layout] (boxes, rows, auto-flow, inclusion and masking)
//	         ↓
//	    [primitive] (images, text, and rectangles in pixels)
//	         ↓
//	    [render/sink] (SVG, PNG, PDF, JSON) and Markdown listings
//
// [pipeline] runs these stages for the CLI and the preview [server] so both
// behave the same.
//
// # Quick Start
//
//	def, _ := pipeline.Load("partners.toml")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(ctx, def, pipeline.Options{Formats: []string{"svg", "md"}})
//	for _, s := range result.Slides {
//	    os.WriteFile(s.Variant.Name+".svg", s.Artifacts["svg"], 0644)
//	}
//
// # Main Packages
//
// ## Slide Model
//
// [definition] - The document schema: logos, boxes, rows, locations, and
// variants, loaded from TOML or YAML.
//
// [layout] - The layout engine. Places box frames, parses row entries
// ("id:tag", "@end"), applies a variant's include, blank, and mask rules,
// rebalances rows with auto-flow, and produces text listings.
//
// [primitive] - Converts a layout into drawable primitives at the document's
// DPI, including dark-mode backdrops and optional extents outlines.
//
// ## Output
//
// [render] - SVG to PDF and PNG conversion with rsvg-convert.
//
// [render/sink] - Output formats for primitives (SVG, PNG, PDF, JSON).
//
// [render/outline] - Graphviz diagrams of which boxes and logos each variant shows.
//
// ## Infrastructure
//
// [cache] - File, Redis, and null caches for image sizes and rendered slides.
//
// [observability] - Hooks for pipeline stages, cache access, and HTTP requests.
//
// [errors] - Coded errors shared by every package.
//
// [fonts] - Font families for SVG and font faces for PNG.
//
// [buildinfo] - Version information stamped at build time.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/layout/...   # Specific package
//	go test -run Example       # Examples only
//
// [definition]: https://pkg.go.dev/github.com/jcoliz/LogoSlideMaker-sub000/pkg/definition
// [imagemetrics]: https://pkg.go.dev/github.com/jcoliz/LogoSlideMaker-sub000/pkg/imagemetrics
// [layout]: https://pkg.go.dev/github.com/jcoliz/LogoSlideMaker-sub000/pkg/layout
// [primitive]: https://pkg.go.dev/github.com/jcoliz/LogoSlideMaker-sub000/pkg/primitive
// [pipeline]: https://pkg.go.dev/github.com/jcoliz/LogoSlideMaker-sub000/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/jcoliz/LogoSlideMaker-sub000/pkg/server
// [render]: https://pkg.go.dev/github.com/jcoliz/LogoSlideMaker-sub000/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/jcoliz/LogoSlideMaker-sub000/pkg/render/sink
// [render/outline]: https://pkg.go.dev/github.com/jcoliz/LogoSlideMaker-sub000/pkg/render/outline
// [cache]: https://pkg.go.dev/github.com/jcoliz/LogoSlideMaker-sub000/pkg/cache
// [observability]: https://pkg.go.dev/github.com/jcoliz/LogoSlideMaker-sub000/pkg/observability
// [errors]: https://pkg.go.dev/github.com/jcoliz/LogoSlideMaker-sub000/pkg/errors
// [fonts]: https://pkg.go.dev/github.com/jcoliz/LogoSlideMaker-sub000/pkg/fonts
// [buildinfo]: https://pkg.go.dev/github.com/jcoliz/LogoSlideMaker-sub000/pkg/buildinfo
package pkg
