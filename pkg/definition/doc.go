// Package definition holds the LogoSlideMaker document model and its loader.
//
// A document declares logos by id, groups them into boxes of rows, and lists
// variants: named filtered views that each render as one slide.
//
//	title = "Partner Ecosystem"
//
//	[layout]
//	line_spacing = 1.0
//	default_width = 9.0
//
//	[logos.azure]
//	title = "Azure"
//	path = "images/azure.png"
//	tags = ["cloud"]
//
//	[[boxes]]
//	title = "Cloud"
//	outer = { x = 0.5, y = 1.0, width = 12.0 }
//	logos.0 = ["azure", "aws:preview", "gcp:!internal"]
//
//	[[variants]]
//	name = "Public"
//	include = ["cloud"]
//
// [Load] picks TOML (github.com/BurntSushi/toml) or YAML (gopkg.in/yaml.v3) by
// file extension, applies defaults, validates, and resolves image paths against
// the document directory. The layout engine treats the result as read-only.
package definition
