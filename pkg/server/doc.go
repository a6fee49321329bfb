// Package server serves live slide previews over HTTP.
//
// The server reloads the document on every request, so editing the TOML or
// YAML file and refreshing the browser shows the change. Image sizes and
// rendered artifacts go through the runner's cache, so unchanged slides
// cost a cache lookup.
//
// # Routes
//
//	GET /                               HTML index linking every variant
//	GET /healthz                        build information
//	GET /variants                       variant metadata as JSON
//	GET /variants/{name}/slide.{format} one rendered slide (svg, png, pdf, json, md)
//	GET /outline.svg                    document outline diagram
//
// Slide routes accept dark=1, lang=<code>, extents=1 and scale=<n> query
// parameters.
//
// # Errors
//
// Failures are returned as JSON [APIError] values. Unknown variants map to
// 404, document errors to 422, and a missing rsvg-convert to 501.
package server
