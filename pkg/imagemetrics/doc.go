// Package imagemetrics measures logo images so primitives can keep their
// aspect ratio.
//
// Layout is a pure computation over a snapshot of measurements: load first,
// then compute. A [Loader] reads every referenced image concurrently and
// returns a [Table], which implements [Provider]:
//
//	table, err := imagemetrics.NewLoader(c, nil, logger).Load(ctx, def.ImagePaths())
//	ratio, err := table.AspectRatio("images/azure.png")
//
// Raster formats are measured from their headers: PNG, JPEG, GIF, BMP, TIFF
// and WebP. SVG files are measured from the root element's width and height
// attributes, falling back to the viewBox.
package imagemetrics
