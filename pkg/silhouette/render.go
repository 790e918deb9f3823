package silhouette

import (
	"image"
	"math"

	"github.com/srwiley/rasterx"

	"github.com/palaeoverse-community/rphylopic/pkg/errors"
)

// Rasterize renders the vector silhouette into a pixel grid of the given
// dimensions. The transformed bounding box is mapped onto the full output
// rectangle, so callers control the aspect ratio through the dimensions.
//
// The style is applied per drawn primitive: each path's fill opacity is
// multiplied by style.Opacity before compositing, and a non-nil style.Fill
// replaces the fill color of every primitive.
func (v *Vector) Rasterize(width, height int, style Style) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidSize,
			"raster dimensions must be positive, got %dx%d", width, height)
	}

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, rgba, rgba.Bounds())
	dasher := rasterx.NewDasher(width, height, scanner)

	sx := float64(width) / v.bounds.Width
	sy := float64(height) / v.bounds.Height
	device := v.xform.
		Multiply(Translate(-v.bounds.X, -v.bounds.Y)).
		Multiply(Scale(sx, sy))

	// oksvg has no SvgIcon.DrawTransformed; draw each path with the device
	// matrix, mirroring SvgIcon.Draw without mutating the shared icon.
	for _, p := range v.icon.SVGPaths {
		p.DrawTransformed(dasher, clamp01(style.Opacity), rasterxMatrix(device))
	}

	out := NewRaster(rgba)
	if style.Fill != nil {
		// Alpha is already composited; only the color channels change.
		out = RecolorRaster(out, 1, style.Fill)
	}
	return out, nil
}

// RasterizeHeight renders the vector silhouette at the given pixel height,
// deriving the width from the aspect ratio.
func (v *Vector) RasterizeHeight(height int, style Style) (*Raster, error) {
	if height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidSize,
			"raster height must be positive, got %d", height)
	}
	width := int(math.Round(float64(height) * v.AspectRatio()))
	if width < 1 {
		width = 1
	}
	return v.Rasterize(width, height, style)
}

// rasterxMatrix converts an affine matrix into the rasterizer's type.
// Both share the {a, b, c, d, e, f} layout and point convention.
func rasterxMatrix(m Matrix) rasterx.Matrix2D {
	return rasterx.Matrix2D{A: m[0], B: m[1], C: m[2], D: m[3], E: m[4], F: m[5]}
}
