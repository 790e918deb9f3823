package silhouette

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/palaeoverse-community/rphylopic/pkg/errors"
)

const rectSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 4 2"><path d="M0 0 H4 V2 H0 Z" fill="#000000"/></svg>`

func TestDecodeVector(t *testing.T) {
	vec, err := DecodeVector(strings.NewReader(rectSVG))
	if err != nil {
		t.Fatalf("DecodeVector() error = %v", err)
	}

	want := NewBBox(0, 0, 4, 2)
	if vec.ViewBox() != want {
		t.Errorf("ViewBox() = %+v, want %+v", vec.ViewBox(), want)
	}
	if vec.Bounds() != want {
		t.Errorf("Bounds() = %+v, want %+v", vec.Bounds(), want)
	}
	if got := vec.AspectRatio(); got != 2 {
		t.Errorf("AspectRatio() = %v, want 2", got)
	}
	if !bytes.Equal(vec.Source(), []byte(rectSVG)) {
		t.Error("Source() does not round-trip the input document")
	}
}

func TestDecodeVectorErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not xml", "definitely not svg"},
		{"empty", ""},
		{"no dimensions", `<svg xmlns="http://www.w3.org/2000/svg"></svg>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeVector(strings.NewReader(tt.input))
			if !errors.Is(err, errors.ErrCodeDecode) {
				t.Errorf("DecodeVector() error = %v, want DECODE_ERROR", err)
			}
		})
	}
}

func TestDecodeRasterRoundTrip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})

	var buf bytes.Buffer
	if err := (&Raster{pix: src}).EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}

	ras, err := DecodeRaster(&buf)
	if err != nil {
		t.Fatalf("DecodeRaster() error = %v", err)
	}
	if ras.Width() != 3 || ras.Height() != 2 {
		t.Errorf("decoded size = %dx%d, want 3x2", ras.Width(), ras.Height())
	}
	if px := ras.Image().NRGBAAt(0, 0); px.R != 255 || px.A != 255 {
		t.Errorf("pixel (0,0) = %v, want opaque red", px)
	}
}

func TestDecodeRasterError(t *testing.T) {
	_, err := DecodeRaster(strings.NewReader("not an image"))
	if !errors.Is(err, errors.ErrCodeDecode) {
		t.Errorf("DecodeRaster() error = %v, want DECODE_ERROR", err)
	}
}

func TestDecodeSniffsFormat(t *testing.T) {
	t.Run("svg", func(t *testing.T) {
		img, err := Decode(strings.NewReader(rectSVG))
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if _, ok := img.(*Vector); !ok {
			t.Errorf("Decode() returned %T, want *Vector", img)
		}
	})

	t.Run("svg with xml declaration", func(t *testing.T) {
		doc := "\xEF\xBB\xBF<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" + rectSVG
		img, err := Decode(strings.NewReader(doc))
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if _, ok := img.(*Vector); !ok {
			t.Errorf("Decode() returned %T, want *Vector", img)
		}
	})

	t.Run("png", func(t *testing.T) {
		var buf bytes.Buffer
		pix := image.NewNRGBA(image.Rect(0, 0, 2, 2))
		if err := imaging.Encode(&buf, pix, imaging.PNG); err != nil {
			t.Fatalf("encode fixture: %v", err)
		}

		img, err := Decode(&buf)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if _, ok := img.(*Raster); !ok {
			t.Errorf("Decode() returned %T, want *Raster", img)
		}
	})
}

func TestEncodeSVGPassthrough(t *testing.T) {
	vec, err := DecodeVector(strings.NewReader(rectSVG))
	if err != nil {
		t.Fatalf("DecodeVector() error = %v", err)
	}

	var buf bytes.Buffer
	if err := vec.EncodeSVG(&buf); err != nil {
		t.Fatalf("EncodeSVG() error = %v", err)
	}
	if buf.String() != rectSVG {
		t.Error("EncodeSVG() altered the document")
	}
}

func TestRasterResize(t *testing.T) {
	src := testRaster(t, [][]color.NRGBA{
		{red, red, blue, blue},
		{red, red, blue, blue},
	})

	got, err := src.Resize(1)
	if err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if got.Width() != 2 || got.Height() != 1 {
		t.Errorf("resized to %dx%d, want 2x1", got.Width(), got.Height())
	}

	if _, err := src.Resize(0); !errors.Is(err, errors.ErrCodeInvalidSize) {
		t.Errorf("Resize(0) error = %v, want INVALID_SIZE", err)
	}
}
