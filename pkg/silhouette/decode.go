package silhouette

import (
	"bytes"
	"io"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"

	"github.com/palaeoverse-community/rphylopic/pkg/errors"
)

// DecodeVector parses an SVG document into a vector silhouette.
// Unsupported SVG features are skipped rather than rejected; silhouettes
// are flat filled paths and survive this fine.
func DecodeVector(r io.Reader) (*Vector, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "failed to read SVG data")
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "failed to parse SVG document")
	}

	viewBox := NewBBox(icon.ViewBox.X, icon.ViewBox.Y, icon.ViewBox.W, icon.ViewBox.H)
	if !viewBox.IsValid() {
		return nil, errors.New(errors.ErrCodeDecode, "SVG document has no usable dimensions")
	}

	return &Vector{
		icon:    icon,
		source:  data,
		viewBox: viewBox,
		xform:   Identity(),
		bounds:  viewBox,
	}, nil
}

// DecodeRaster decodes a pixel image (PNG, JPEG, GIF, TIFF, or BMP) into
// a raster silhouette.
func DecodeRaster(r io.Reader) (*Raster, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "failed to decode raster image")
	}
	return NewRaster(img), nil
}

// Decode sniffs the payload and decodes it as either a vector or raster
// silhouette. SVG detection looks for an <svg> root within the document
// preamble; everything else goes through the raster decoders.
func Decode(r io.Reader) (Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "failed to read image data")
	}

	if looksLikeSVG(data) {
		return DecodeVector(bytes.NewReader(data))
	}
	return DecodeRaster(bytes.NewReader(data))
}

// looksLikeSVG reports whether the payload starts with an SVG document.
// XML declarations, comments, and doctypes may precede the root element.
func looksLikeSVG(data []byte) bool {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}

	// Skip a UTF-8 byte order mark if present.
	head = bytes.TrimPrefix(head, []byte{0xEF, 0xBB, 0xBF})
	head = bytes.TrimLeft(head, " \t\r\n")

	if len(head) == 0 || head[0] != '<' {
		return false
	}
	return bytes.Contains(head, []byte("<svg"))
}
