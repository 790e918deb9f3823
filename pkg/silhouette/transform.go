package silhouette

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/palaeoverse-community/rphylopic/pkg/errors"
)

// Style controls how a silhouette is painted.
type Style struct {
	// Opacity multiplies the alpha channel. Must be in [0, 1]; zero is
	// fully transparent.
	Opacity float64

	// Fill overrides the fill color of every drawn primitive. Nil keeps
	// the original colors.
	Fill color.Color
}

// DefaultStyle returns the opaque, uncolored style.
func DefaultStyle() Style {
	return Style{Opacity: 1}
}

// Flip mirrors the silhouette. Horizontal mirrors across the vertical
// axis through the image center, vertical across the horizontal axis.
// Both may be set at once.
func Flip(img Image, horizontal, vertical bool) (Image, error) {
	if !horizontal && !vertical {
		return img, nil
	}

	switch im := img.(type) {
	case *Vector:
		sx, sy := 1.0, 1.0
		if horizontal {
			sx = -1
		}
		if vertical {
			sy = -1
		}
		c := im.bounds.Center()
		return im.compose(ScaleAbout(sx, sy, c.X, c.Y)), nil

	case *Raster:
		pix := im.pix
		if horizontal {
			pix = imaging.FlipH(pix)
		}
		if vertical {
			pix = imaging.FlipV(pix)
		}
		return &Raster{pix: pix}, nil

	default:
		return nil, errors.New(errors.ErrCodeUnsupportedImage,
			"image must be a vector or raster silhouette, got %T", img)
	}
}

// Rotate turns the silhouette counterclockwise by the given number of
// degrees about its center. Vector silhouettes rotate by any finite
// angle; raster silhouettes only support multiples of 90 degrees.
func Rotate(img Image, degrees float64) (Image, error) {
	if err := errors.ValidateAngle(degrees); err != nil {
		return nil, err
	}
	if degrees == 0 {
		return img, nil
	}

	switch im := img.(type) {
	case *Vector:
		// Counterclockwise on screen is a negative angle in the y-down
		// silhouette coordinate space.
		rad := -degrees * math.Pi / 180
		c := im.bounds.Center()
		return im.compose(RotateAbout(rad, c.X, c.Y)), nil

	case *Raster:
		turns := math.Mod(degrees, 360)
		if turns < 0 {
			turns += 360
		}
		switch turns {
		case 0:
			return im, nil
		case 90:
			return &Raster{pix: imaging.Rotate90(im.pix)}, nil
		case 180:
			return &Raster{pix: imaging.Rotate180(im.pix)}, nil
		case 270:
			return &Raster{pix: imaging.Rotate270(im.pix)}, nil
		default:
			return nil, errors.New(errors.ErrCodeUnsupportedRotation,
				"raster silhouettes only rotate in multiples of 90 degrees, got %v", degrees)
		}

	default:
		return nil, errors.New(errors.ErrCodeUnsupportedImage,
			"image must be a vector or raster silhouette, got %T", img)
	}
}

// RecolorRaster rewrites the pixel color channels of a raster silhouette.
// The alpha channel is scaled by opacity; when tint is non-nil every pixel
// takes its color channels. Opacity outside [0, 1] is clamped.
func RecolorRaster(r *Raster, opacity float64, tint color.Color) *Raster {
	opacity = clamp01(opacity)

	var tr, tg, tb uint8
	if tint != nil {
		c := color.NRGBAModel.Convert(tint).(color.NRGBA)
		tr, tg, tb = c.R, c.G, c.B
	}

	src := r.pix
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			px := src.NRGBAAt(b.Min.X+x, b.Min.Y+y)
			out := color.NRGBA{
				R: px.R,
				G: px.G,
				B: px.B,
				A: uint8(math.Round(float64(px.A) * opacity)),
			}
			if tint != nil {
				out.R, out.G, out.B = tr, tg, tb
			}
			dst.SetNRGBA(x, y, out)
		}
	}
	return &Raster{pix: dst}
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
