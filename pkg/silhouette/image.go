package silhouette

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
)

// Image is a silhouette in one of the two supported representations:
// a scalable [Vector] or a pixel-grid [Raster]. The set is closed; code
// switching on the concrete type should still treat unknown values as
// unsupported.
type Image interface {
	// AspectRatio returns the width-to-height ratio of the image.
	AspectRatio() float64

	isImage()
}

// Vector is a scalable silhouette parsed from an SVG document. It carries
// the intrinsic view box of the document plus an accumulated affine
// transform; geometric operations compose into the transform and the
// drawing itself is only touched at rasterization time.
type Vector struct {
	icon    *oksvg.SvgIcon
	source  []byte
	viewBox BBox
	xform   Matrix
	bounds  BBox
}

func (v *Vector) isImage() {}

// AspectRatio returns |Δx|/|Δy| of the transformed bounding box.
func (v *Vector) AspectRatio() float64 {
	return v.bounds.AspectRatio()
}

// Bounds returns the envelope of the silhouette under its accumulated
// transform, in view-box coordinates.
func (v *Vector) Bounds() BBox {
	return v.bounds
}

// ViewBox returns the intrinsic bounding box declared by the SVG document.
func (v *Vector) ViewBox() BBox {
	return v.viewBox
}

// Source returns the SVG document the silhouette was decoded from.
// Accumulated transforms are not baked into the returned bytes.
func (v *Vector) Source() []byte {
	return v.source
}

// Clone returns a copy sharing the parsed path data. Path data is never
// mutated after decoding, so sharing is safe.
func (v *Vector) Clone() *Vector {
	clone := *v
	return &clone
}

// compose returns a copy with m applied after the accumulated transform,
// with the envelope recomputed from the intrinsic view box.
func (v *Vector) compose(m Matrix) *Vector {
	clone := v.Clone()
	clone.xform = v.xform.Multiply(m)
	clone.bounds = clone.xform.TransformBBox(v.viewBox)
	return clone
}

// Raster is a fixed pixel-grid silhouette stored as non-premultiplied RGBA.
type Raster struct {
	pix *image.NRGBA
}

// NewRaster creates a raster silhouette from any decoded image.
func NewRaster(img image.Image) *Raster {
	return &Raster{pix: imaging.Clone(img)}
}

func (r *Raster) isImage() {}

// AspectRatio returns column count divided by row count.
func (r *Raster) AspectRatio() float64 {
	b := r.pix.Bounds()
	return float64(b.Dx()) / float64(b.Dy())
}

// Width returns the pixel column count.
func (r *Raster) Width() int {
	return r.pix.Bounds().Dx()
}

// Height returns the pixel row count.
func (r *Raster) Height() int {
	return r.pix.Bounds().Dy()
}

// Image returns the underlying pixel grid. Callers must not modify it;
// use Clone first if mutation is needed.
func (r *Raster) Image() *image.NRGBA {
	return r.pix
}

// Clone returns a deep copy of the raster.
func (r *Raster) Clone() *Raster {
	return &Raster{pix: imaging.Clone(r.pix)}
}
