package phylopic

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/palaeoverse-community/rphylopic/pkg/errors"
	"github.com/palaeoverse-community/rphylopic/pkg/silhouette"
)

const (
	testUUID = "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"
	testSVG  = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 4 2"><path d="M0 0 H4 V2 H0 Z"/></svg>`
)

func TestClientImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/":
			w.Write([]byte(testBuild))
		case "/images/" + testUUID:
			if got := r.URL.Query().Get("build"); got != "193" {
				t.Errorf("build query = %s, want 193", got)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"attribution": "Jane Doe",
				"_links": map[string]any{
					"license":    map[string]any{"href": "https://creativecommons.org/publicdomain/zero/1.0/"},
					"vectorFile": map[string]any{"href": "https://images.example.org/owl.svg"},
					"rasterFiles": []map[string]any{
						{"href": "https://images.example.org/owl-512.png", "sizes": "512x341"},
						{"href": "https://images.example.org/owl-64.png", "sizes": "64x43"},
					},
					"thumbnailFiles": []map[string]any{
						{"href": "https://images.example.org/owl-thumb.png", "sizes": "192x128"},
					},
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	rec, err := c.Image(context.Background(), testUUID)
	if err != nil {
		t.Fatalf("image lookup failed: %v", err)
	}

	if rec.Attribution != "Jane Doe" {
		t.Errorf("attribution = %s, want Jane Doe", rec.Attribution)
	}
	if rec.VectorURL != "https://images.example.org/owl.svg" {
		t.Errorf("vector URL = %s", rec.VectorURL)
	}
	if len(rec.RasterURLs) != 2 {
		t.Fatalf("got %d raster renditions, want 2", len(rec.RasterURLs))
	}
	if rec.RasterURLs[0].Width != 512 || rec.RasterURLs[0].Height != 341 {
		t.Errorf("first rendition = %dx%d, want 512x341", rec.RasterURLs[0].Width, rec.RasterURLs[0].Height)
	}
	if len(rec.ThumbnailURLs) != 1 {
		t.Errorf("got %d thumbnails, want 1", len(rec.ThumbnailURLs))
	}
}

func TestClientImageNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/" {
			w.Write([]byte(testBuild))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	_, err := c.Image(context.Background(), testUUID)
	if !errors.Is(err, errors.ErrCodeImageNotFound) {
		t.Errorf("Image() error = %v, want IMAGE_NOT_FOUND", err)
	}
}

func TestClientImageInvalidUUID(t *testing.T) {
	c := NewClient()
	_, err := c.Image(context.Background(), "not-a-uuid")
	if !errors.Is(err, errors.ErrCodeInvalidUUID) {
		t.Errorf("Image() error = %v, want INVALID_UUID", err)
	}
}

func TestFetchVector(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/files/owl.svg":
			w.Header().Set("Content-Type", "image/svg+xml")
			w.Write([]byte(testSVG))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	rec := &ImageRecord{UUID: testUUID, VectorURL: server.URL + "/files/owl.svg"}
	v, err := c.FetchVector(context.Background(), rec)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if got := v.AspectRatio(); got != 2 {
		t.Errorf("aspect ratio = %v, want 2", got)
	}
}

func TestFetchVectorMissing(t *testing.T) {
	c := NewClient()
	_, err := c.FetchVector(context.Background(), &ImageRecord{UUID: testUUID})
	if !errors.Is(err, errors.ErrCodeImageNotFound) {
		t.Errorf("FetchVector() error = %v, want IMAGE_NOT_FOUND", err)
	}
}

func TestFetchRasterPicksSmallestSufficient(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/files/big.png":
			w.Write(pngBytes(t, 4, 2))
		case "/files/small.png":
			w.Write(pngBytes(t, 2, 1))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	rec := &ImageRecord{
		UUID: testUUID,
		RasterURLs: []RasterFile{
			{URL: server.URL + "/files/big.png", Width: 512, Height: 341},
			{URL: server.URL + "/files/small.png", Width: 64, Height: 43},
		},
	}

	// A 40px request is satisfied by the 43px rendition.
	r, err := c.FetchRaster(context.Background(), rec, 40)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if r.Width() != 2 || r.Height() != 1 {
		t.Errorf("got %dx%d rendition, want the small one", r.Width(), r.Height())
	}

	// A 1000px request exceeds every rendition; the largest wins.
	r, err = c.FetchRaster(context.Background(), rec, 1000)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if r.Width() != 4 || r.Height() != 2 {
		t.Errorf("got %dx%d rendition, want the large one", r.Width(), r.Height())
	}
}

func TestFetchRasterMissing(t *testing.T) {
	c := NewClient()
	_, err := c.FetchRaster(context.Background(), &ImageRecord{UUID: testUUID}, 100)
	if !errors.Is(err, errors.ErrCodeImageNotFound) {
		t.Errorf("FetchRaster() error = %v, want IMAGE_NOT_FOUND", err)
	}
}

func TestFetchImagePrefersVector(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(testBuild))
		case "/images/" + testUUID:
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"attribution": "Jane Doe",
				"_links": map[string]any{
					"license":    map[string]any{"href": ""},
					"vectorFile": map[string]any{"href": server.URL + "/files/owl.svg"},
					"rasterFiles": []map[string]any{
						{"href": server.URL + "/files/owl.png", "sizes": "4x2"},
					},
				},
			})
		case "/files/owl.svg":
			w.Write([]byte(testSVG))
		case "/files/owl.png":
			w.Write(pngBytes(t, 4, 2))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	img, err := c.FetchImage(context.Background(), testUUID)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if _, ok := img.(*silhouette.Vector); !ok {
		t.Errorf("got %T, want *silhouette.Vector", img)
	}
}

func TestFetchImageRasterFallback(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(testBuild))
		case "/images/" + testUUID:
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"_links": map[string]any{
					"license": map[string]any{"href": ""},
					"rasterFiles": []map[string]any{
						{"href": server.URL + "/files/owl.png", "sizes": "4x2"},
					},
				},
			})
		case "/files/owl.png":
			w.Write(pngBytes(t, 4, 2))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	img, err := c.FetchImage(context.Background(), testUUID)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if _, ok := img.(*silhouette.Raster); !ok {
		t.Errorf("got %T, want *silhouette.Raster", img)
	}
}

func TestFetchImageNoRenditions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/":
			w.Write([]byte(testBuild))
		case "/images/" + testUUID:
			json.NewEncoder(w).Encode(map[string]any{
				"_links": map[string]any{"license": map[string]any{"href": ""}},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	_, err := c.FetchImage(context.Background(), testUUID)
	if !errors.Is(err, errors.ErrCodeImageNotFound) {
		t.Errorf("FetchImage() error = %v, want IMAGE_NOT_FOUND", err)
	}
}

func TestParseSizes(t *testing.T) {
	tests := []struct {
		sizes  string
		wantW  int
		wantH  int
		wantOK bool
	}{
		{"512x341", 512, 341, true},
		{"64x43", 64, 43, true},
		{"junk", 0, 0, false},
		{"12x", 0, 0, false},
		{"", 0, 0, false},
	}

	for _, tt := range tests {
		w, h, ok := parseSizes(tt.sizes)
		if ok != tt.wantOK {
			t.Errorf("parseSizes(%q) ok = %v, want %v", tt.sizes, ok, tt.wantOK)
			continue
		}
		if ok && (w != tt.wantW || h != tt.wantH) {
			t.Errorf("parseSizes(%q) = %dx%d, want %dx%d", tt.sizes, w, h, tt.wantW, tt.wantH)
		}
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
