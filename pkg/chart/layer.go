package chart

import (
	"image"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/palaeoverse-community/rphylopic/pkg/errors"
	"github.com/palaeoverse-community/rphylopic/pkg/silhouette"
)

// renderScale oversamples vector rasterization relative to canvas points.
const renderScale = 2

// Layer is a silhouette placed on a plot. It implements [plot.Plotter],
// and positioned layers also contribute to axis autoscaling through
// [plot.DataRanger].
type Layer struct {
	img    silhouette.Image
	style  silhouette.Style
	pos    *Position
	aspect float64
}

var (
	_ plot.Plotter     = (*Layer)(nil)
	_ plot.DataRanger  = (*Layer)(nil)
	_ plot.Thumbnailer = (*Layer)(nil)
)

// Image returns the transformed silhouette the layer paints.
func (l *Layer) Image() silhouette.Image {
	return l.img
}

// Positioned reports whether the layer occupies a fixed place in data
// coordinates rather than filling the plotting area.
func (l *Layer) Positioned() bool {
	return l.pos != nil
}

// DataRange returns the rectangle the silhouette occupies in data
// coordinates: the height is centered on Y and the width follows from
// the aspect ratio. An unpositioned layer returns inverted infinities,
// leaving axis ranges untouched.
func (l *Layer) DataRange() (xmin, xmax, ymin, ymax float64) {
	if l.pos == nil {
		return math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)
	}
	halfH := l.pos.Height / 2
	halfW := l.pos.Height * l.aspect / 2
	return l.pos.X - halfW, l.pos.X + halfW, l.pos.Y - halfH, l.pos.Y + halfH
}

// Plot draws the silhouette onto the canvas. A positioned layer maps its
// data-coordinate rectangle through the plot's transforms; an
// unpositioned layer fills the plotting area, centered and preserving
// aspect ratio.
func (l *Layer) Plot(c draw.Canvas, plt *plot.Plot) {
	rect := fitRect(c.Rectangle, l.aspect)
	if l.pos != nil {
		trX, trY := plt.Transforms(&c)
		xmin, xmax, ymin, ymax := l.DataRange()
		rect = vg.Rectangle{
			Min: vg.Point{X: trX(xmin), Y: trY(ymin)},
			Max: vg.Point{X: trX(xmax), Y: trY(ymax)},
		}
	}
	l.draw(c, rect)
}

// Thumbnail draws the silhouette into a legend cell.
func (l *Layer) Thumbnail(c *draw.Canvas) {
	l.draw(*c, fitRect(c.Rectangle, l.aspect))
}

func (l *Layer) draw(c draw.Canvas, rect vg.Rectangle) {
	size := rect.Size()
	if size.X <= 0 || size.Y <= 0 {
		return
	}
	img, err := l.render(rect)
	if err != nil {
		return
	}
	c.DrawImage(rect, img)
}

// render produces the pixels for a canvas rectangle. Vectors rasterize
// on demand with the layer style; rasters were styled at construction
// and scale to the rectangle when drawn.
func (l *Layer) render(rect vg.Rectangle) (image.Image, error) {
	switch img := l.img.(type) {
	case *silhouette.Vector:
		w := int(math.Round(rect.Size().X.Points() * renderScale))
		h := int(math.Round(rect.Size().Y.Points() * renderScale))
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
		r, err := img.Rasterize(w, h, l.style)
		if err != nil {
			return nil, err
		}
		return r.Image(), nil
	case *silhouette.Raster:
		return img.Image(), nil
	default:
		return nil, errors.New(errors.ErrCodeUnsupportedImage,
			"image must be a vector or raster silhouette, got %T", l.img)
	}
}

// fitRect returns the largest rectangle of the given aspect ratio that
// fits inside bounds, centered.
func fitRect(bounds vg.Rectangle, aspect float64) vg.Rectangle {
	size := bounds.Size()
	w := size.X.Points()
	h := size.Y.Points()
	if w <= 0 || h <= 0 || aspect <= 0 {
		return bounds
	}

	fitW := w
	fitH := fitW / aspect
	if fitH > h {
		fitH = h
		fitW = fitH * aspect
	}

	cx := (bounds.Min.X + bounds.Max.X) / 2
	cy := (bounds.Min.Y + bounds.Max.Y) / 2
	halfW := vg.Length(fitW / 2)
	halfH := vg.Length(fitH / 2)
	return vg.Rectangle{
		Min: vg.Point{X: cx - halfW, Y: cy - halfH},
		Max: vg.Point{X: cx + halfW, Y: cy + halfH},
	}
}

// RenderPNG draws a plot to PNG at the given canvas size.
func RenderPNG(p *plot.Plot, width, height vg.Length, w io.Writer) error {
	canvas := vgimg.New(width, height)
	p.Draw(draw.New(canvas))

	out := vgimg.PngCanvas{Canvas: canvas}
	if _, err := out.WriteTo(w); err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "failed to encode chart PNG")
	}
	return nil
}
