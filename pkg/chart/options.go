package chart

import (
	"image/color"
	"math"

	"github.com/palaeoverse-community/rphylopic/pkg/errors"
	"github.com/palaeoverse-community/rphylopic/pkg/silhouette"
)

// Position places a silhouette at a point in data coordinates. Height is
// the silhouette's vertical extent in data units; the horizontal extent
// follows from the image's aspect ratio.
type Position struct {
	X      float64
	Y      float64
	Height float64
}

// Options controls how a silhouette is sourced, transformed, and styled.
// Exactly one of Image, Name, or UUID must be set. The zero value is not
// usable; start from [DefaultOptions].
type Options struct {
	// Image supplies an already-decoded silhouette directly.
	Image silhouette.Image

	// Name resolves a taxonomic name to its primary silhouette.
	Name string

	// UUID fetches a specific silhouette image by identifier.
	UUID string

	// Position places the silhouette in data coordinates. When nil, the
	// silhouette fills the plotting area.
	Position *Position

	// Opacity is the overall transparency in [0, 1]. Zero means fully
	// transparent.
	Opacity float64

	// Fill overrides the silhouette color when non-nil.
	Fill color.Color

	// FlipHorizontal and FlipVertical mirror the silhouette. Flips are
	// applied before any rotation.
	FlipHorizontal bool
	FlipVertical   bool

	// Angle rotates the silhouette counterclockwise, in degrees. Raster
	// silhouettes only support multiples of 90.
	Angle float64
}

// DefaultOptions returns options for an unstyled, fully opaque silhouette.
func DefaultOptions() Options {
	return Options{Opacity: 1}
}

func (o Options) validate() error {
	sources := 0
	if o.Image != nil {
		sources++
	}
	if o.Name != "" {
		sources++
	}
	if o.UUID != "" {
		sources++
	}
	if sources != 1 {
		return errors.New(errors.ErrCodeInvalidSource,
			"exactly one of an image, a name, or a UUID must be provided, got %d", sources)
	}

	if err := errors.ValidateOpacity(o.Opacity); err != nil {
		return err
	}
	if err := errors.ValidateAngle(o.Angle); err != nil {
		return err
	}

	if p := o.Position; p != nil {
		if !isFinite(p.X) || !isFinite(p.Y) {
			return errors.New(errors.ErrCodeInvalidSize,
				"placement coordinates must be finite, got (%v, %v)", p.X, p.Y)
		}
		if !isFinite(p.Height) || p.Height <= 0 {
			return errors.New(errors.ErrCodeInvalidSize,
				"silhouette height must be positive and finite, got %v", p.Height)
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
