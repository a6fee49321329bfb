// Package layout computes where every logo of a slide goes.
//
// # Overview
//
// A [definition.Definition] groups logos into boxes of rows. For one
// [definition.Variant], the [Engine] selects the boxes on the variant's pages,
// resolves each box's frame, optionally rebalances its entries, and spreads
// each row's entries evenly across the row width. The result is a
// [SlideLayout]: logo centers and box titles in inches.
//
//	eng := layout.New(def)
//	slide, err := eng.Layout(variant)
//
// # Entries
//
// Rows list raw entry strings. An entry is a logo id optionally followed by
// colon-separated tags scoped to that placement:
//
//	"azure"            the logo "azure"
//	"azure:preview"    included only when the variant includes "preview"
//	"azure:!internal"  excluded when the variant includes "internal"
//	"@end"             ends the row; later entries are ignored
//	""                 an empty column
//
// # Inclusion and Visibility
//
// A [Filter] answers two separate questions. Included entries occupy a
// column. Shown entries are drawn. Blank tags make the difference: a blanked
// logo keeps its column but draws nothing. A variant mask substitutes a
// placeholder logo for entries whose tags match its trigger tags. Auto-flow
// and row layout share the same Filter so column math always matches what is
// drawn.
//
// # Box Geometry
//
// Each box resolves to exactly one positioning basis, in order of precedence:
//
//  1. a named location on the box's page
//  2. an outer container rectangle
//  3. explicit X, Y and width, with X and width falling back to the layout defaults
//
// Container boxes inset their rows by the padding plus half a text width
// horizontally and half an icon vertically. A box without a Y stacks below
// the lowest logo laid out so far.
//
// # Missing Logos
//
// An entry naming an unknown logo is drawn as a placeholder titled
// "Missing Logo: {id}". The definition is never modified; the ids are
// reported in [SlideLayout.Missing].
//
// # Listings
//
// [Engine.Listing] projects the same selection and flow into plain titles,
// and [WriteMarkdown] renders listings as a Markdown outline.
package layout
