package silhouette

import (
	"io"

	"github.com/disintegration/imaging"

	"github.com/palaeoverse-community/rphylopic/pkg/errors"
)

// EncodePNG writes the raster silhouette as a PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	if err := imaging.Encode(w, r.pix, imaging.PNG); err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "failed to encode PNG")
	}
	return nil
}

// EncodeSVG writes the SVG document the silhouette was decoded from.
// Accumulated transforms and styling are not baked in; rasterize instead
// when those must be visible in the output.
func (v *Vector) EncodeSVG(w io.Writer) error {
	if _, err := w.Write(v.source); err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "failed to write SVG")
	}
	return nil
}

// Resize scales the raster silhouette to the given pixel height,
// preserving the aspect ratio.
func (r *Raster) Resize(height int) (*Raster, error) {
	if height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidSize,
			"raster height must be positive, got %d", height)
	}
	return &Raster{pix: imaging.Resize(r.pix, 0, height, imaging.Lanczos)}, nil
}
