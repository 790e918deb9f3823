package cli

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/palaeoverse-community/rphylopic/pkg/errors"
	"github.com/palaeoverse-community/rphylopic/pkg/phylopic"
)

const cliTestSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 4 2"><path d="M0 0h4v2H0z" fill="#000000"/></svg>`

func TestFetchOptsValidate(t *testing.T) {
	tests := []struct {
		name     string
		opts     fetchOpts
		wantCode errors.Code
	}{
		{"defaults", fetchOpts{height: 512, opacity: 1}, ""},
		{"explicit png with transforms", fetchOpts{format: "png", height: 512, opacity: 0.5, angle: 90, flipH: true}, ""},
		{"stdout output", fetchOpts{output: "-", height: 512, opacity: 1}, ""},
		{"unknown format", fetchOpts{format: "jpeg", height: 512, opacity: 1}, errors.ErrCodeInvalidConfig},
		{"svg with angle", fetchOpts{format: "svg", height: 512, opacity: 1, angle: 90}, errors.ErrCodeInvalidConfig},
		{"svg with fill", fetchOpts{format: "svg", height: 512, opacity: 1, fill: "#708090"}, errors.ErrCodeInvalidConfig},
		{"svg with flip", fetchOpts{format: "svg", height: 512, opacity: 1, flipV: true}, errors.ErrCodeInvalidConfig},
		{"opacity above one", fetchOpts{height: 512, opacity: 1.5}, errors.ErrCodeInvalidOpacity},
		{"opacity NaN", fetchOpts{height: 512, opacity: math.NaN()}, errors.ErrCodeInvalidOpacity},
		{"angle infinite", fetchOpts{height: 512, opacity: 1, angle: math.Inf(1)}, errors.ErrCodeInvalidAngle},
		{"zero height", fetchOpts{height: 0, opacity: 1}, errors.ErrCodeInvalidSize},
		{"bad output path", fetchOpts{output: "out\x00.png", height: 512, opacity: 1}, errors.ErrCodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.validate()
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("validate() error = %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestFetchOptsStyled(t *testing.T) {
	plain := fetchOpts{height: 512, opacity: 1}
	if plain.styled() {
		t.Error("default flags should not count as styled")
	}

	styled := []fetchOpts{
		{opacity: 1, angle: 90},
		{opacity: 1, flipH: true},
		{opacity: 1, flipV: true},
		{opacity: 1, fill: "#708090"},
		{opacity: 0.5},
	}
	for i, o := range styled {
		if !o.styled() {
			t.Errorf("case %d: styled() = false, want true", i)
		}
	}
}

func TestFetchPNGFromVector(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/owl.svg" {
			fmt.Fprint(w, cliTestSVG)
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := phylopic.NewClient(phylopic.WithBaseURL(server.URL))
	rec := &phylopic.ImageRecord{
		UUID:      "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee",
		VectorURL: server.URL + "/owl.svg",
	}

	write, err := fetchPNG(context.Background(), client, rec, &fetchOpts{height: 64, opacity: 1})
	if err != nil {
		t.Fatalf("fetchPNG() error = %v", err)
	}

	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		t.Fatalf("write error = %v", err)
	}
	cfg, err := png.DecodeConfig(&buf)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if cfg.Width != 128 || cfg.Height != 64 {
		t.Errorf("output = %dx%d, want 128x64", cfg.Width, cfg.Height)
	}
}

func TestFetchPNGFromRasterRotated(t *testing.T) {
	var pngData bytes.Buffer
	if err := png.Encode(&pngData, image.NewNRGBA(image.Rect(0, 0, 4, 2))); err != nil {
		t.Fatal(err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/owl.png" {
			w.Write(pngData.Bytes())
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := phylopic.NewClient(phylopic.WithBaseURL(server.URL))
	rec := &phylopic.ImageRecord{
		UUID: "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee",
		RasterURLs: []phylopic.RasterFile{
			{URL: server.URL + "/owl.png", Width: 4, Height: 2},
		},
	}

	// A quarter turn swaps the 4x2 source to 2x4, matching the requested height.
	write, err := fetchPNG(context.Background(), client, rec, &fetchOpts{height: 4, opacity: 1, angle: 90})
	if err != nil {
		t.Fatalf("fetchPNG() error = %v", err)
	}

	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		t.Fatalf("write error = %v", err)
	}
	cfg, err := png.DecodeConfig(&buf)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if cfg.Width != 2 || cfg.Height != 4 {
		t.Errorf("output = %dx%d, want 2x4", cfg.Width, cfg.Height)
	}
}

func TestWriteOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	err := writeOutput(path, func(w io.Writer) error {
		_, err := w.Write([]byte("hello"))
		return err
	})
	if err != nil {
		t.Fatalf("writeOutput() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello" {
		t.Errorf("file content = %q, want %q", data, "hello")
	}
}

func TestWriteOutputBadDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.txt")

	err := writeOutput(path, func(w io.Writer) error { return nil })
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("writeOutput() error = %v, want INVALID_PATH", err)
	}
}
