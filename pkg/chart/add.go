package chart

import (
	"context"

	"github.com/palaeoverse-community/rphylopic/pkg/errors"
	"github.com/palaeoverse-community/rphylopic/pkg/silhouette"
)

// ImageSource resolves taxonomic names and fetches silhouette images.
// *phylopic.Client satisfies it; tests substitute fakes.
type ImageSource interface {
	ImageUUID(ctx context.Context, name string) (string, error)
	FetchImage(ctx context.Context, uuid string) (silhouette.Image, error)
}

// AddSilhouette builds a silhouette layer ready to add to a plot.
//
// Options are validated before any lookup or download happens, so a bad
// opacity or angle never costs a network round trip. The silhouette is
// then resolved (directly, by UUID, or by name), mirrored, rotated, and
// styled per the options. Any failure is terminal: nothing is retried,
// and no partial layer is returned.
func AddSilhouette(ctx context.Context, src ImageSource, opts Options) (*Layer, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	img, err := resolveImage(ctx, src, opts)
	if err != nil {
		return nil, err
	}
	switch img.(type) {
	case *silhouette.Vector, *silhouette.Raster:
	default:
		return nil, errors.New(errors.ErrCodeUnsupportedImage,
			"image must be a vector or raster silhouette, got %T", img)
	}

	// Flips apply before rotation; the two orders are not equivalent.
	img, err = silhouette.Flip(img, opts.FlipHorizontal, opts.FlipVertical)
	if err != nil {
		return nil, err
	}
	img, err = silhouette.Rotate(img, opts.Angle)
	if err != nil {
		return nil, err
	}

	// Raster styling rewrites pixels up front; vector styling is deferred
	// to paint time so the silhouette stays resolution-independent.
	if r, ok := img.(*silhouette.Raster); ok && (opts.Opacity != 1 || opts.Fill != nil) {
		img = silhouette.RecolorRaster(r, opts.Opacity, opts.Fill)
	}

	layer := &Layer{
		img:    img,
		style:  silhouette.Style{Opacity: opts.Opacity, Fill: opts.Fill},
		aspect: img.AspectRatio(),
	}
	if opts.Position != nil {
		p := *opts.Position
		layer.pos = &p
	}
	return layer, nil
}

func resolveImage(ctx context.Context, src ImageSource, opts Options) (silhouette.Image, error) {
	if opts.Image != nil {
		return opts.Image, nil
	}
	if src == nil {
		return nil, errors.New(errors.ErrCodeInvalidSource,
			"an image source is required to resolve a name or UUID")
	}
	if opts.UUID != "" {
		return src.FetchImage(ctx, opts.UUID)
	}
	uuid, err := src.ImageUUID(ctx, opts.Name)
	if err != nil {
		return nil, err
	}
	return src.FetchImage(ctx, uuid)
}
