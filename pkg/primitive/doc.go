// Package primitive converts slide layouts into drawable primitives.
//
// Layouts are in inches and describe logo centers. Primitives are in pixels
// and describe rectangles: an image sized to keep the logo's visual area
// constant whatever its aspect ratio, and a label centered below it.
//
// For an image with aspect ratio a = width/height, the image rectangle is
// IconSize·sqrt(a) wide and IconSize/sqrt(a) tall, so the geometric mean of
// its sides is always IconSize.
package primitive
