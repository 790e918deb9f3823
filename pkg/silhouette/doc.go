// Package silhouette provides the image model and transform primitives for
// organism silhouettes.
//
// A silhouette is either a [Vector] (a parsed SVG with an intrinsic view
// box) or a [Raster] (a pixel grid); both satisfy the closed [Image]
// interface. Vector silhouettes stay resolution-independent through the
// whole pipeline: flips and rotations compose into an affine transform and
// nothing is painted until [Vector.Rasterize] runs.
//
// # Core Types
//
//   - [Image]: closed union of the two silhouette representations
//   - [Vector], [Raster]: the representations themselves
//   - [Style]: opacity and fill override applied when painting
//   - [BBox], [Matrix], [Point]: geometry support
//
// # Decoding
//
//	vec, err := silhouette.DecodeVector(svgReader)
//	ras, err := silhouette.DecodeRaster(pngReader)
//	img, err := silhouette.Decode(unknownReader) // sniffs the format
//
// # Transforms
//
// Transforms never mutate their input; they return a new silhouette:
//
//	img, err = silhouette.Flip(img, true, false) // mirror horizontally
//	img, err = silhouette.Rotate(img, 90)        // counterclockwise degrees
//
// Raster silhouettes only rotate in multiples of 90 degrees; vector
// silhouettes rotate by any finite angle, with the bounding box recomputed
// as the envelope of the rotated geometry.
//
// # Painting
//
// Rasterization maps the (transformed) bounding box onto the requested
// pixel rectangle and applies a [Style] per primitive:
//
//	ras, err := vec.Rasterize(512, 256, silhouette.Style{Opacity: 0.5, Fill: purple})
//
// For rasters, [RecolorRaster] rewrites pixels directly: color channels
// take the tint and the alpha channel is scaled by the opacity.
package silhouette
