package phylopic

import (
	"context"
	"strconv"
	"strings"

	"github.com/palaeoverse-community/rphylopic/pkg/errors"
	"github.com/palaeoverse-community/rphylopic/pkg/silhouette"
)

// ImageRecord describes a silhouette image held by PhyloPic: who made
// it, under which license, and where its renditions can be downloaded.
type ImageRecord struct {
	UUID        string
	Attribution string
	License     string

	// VectorURL points at the original SVG, when one exists.
	VectorURL string

	// RasterURLs lists pre-rendered PNG renditions, largest first as
	// the API reports them.
	RasterURLs []RasterFile

	// ThumbnailURLs lists small preview renditions.
	ThumbnailURLs []RasterFile
}

// RasterFile is a single pre-rendered raster rendition of a silhouette.
type RasterFile struct {
	URL    string
	Width  int
	Height int
}

// Image fetches the metadata record for a silhouette image by UUID.
func (c *Client) Image(ctx context.Context, uuid string) (*ImageRecord, error) {
	if err := errors.ValidateImageUUID(uuid); err != nil {
		return nil, err
	}

	q, err := c.buildQuery(ctx)
	if err != nil {
		return nil, err
	}

	var resp imageResponse
	if err := c.get(ctx, "/images/"+uuid, q, &resp); err != nil {
		if errors.Is(err, errors.ErrCodeNotFound) {
			return nil, errors.New(errors.ErrCodeImageNotFound, "no image found with UUID %s", uuid)
		}
		return nil, err
	}

	rec := &ImageRecord{UUID: uuid}
	if resp.Attribution != nil {
		rec.Attribution = *resp.Attribution
	}
	rec.License = resp.Links.License.Href
	if resp.Links.VectorFile != nil {
		rec.VectorURL = resp.Links.VectorFile.Href
	}
	rec.RasterURLs = parseRasterFiles(resp.Links.RasterFiles)
	rec.ThumbnailURLs = parseRasterFiles(resp.Links.ThumbnailFiles)
	return rec, nil
}

// FetchVector downloads a silhouette's original SVG.
func (c *Client) FetchVector(ctx context.Context, rec *ImageRecord) (*silhouette.Vector, error) {
	if rec.VectorURL == "" {
		return nil, errors.New(errors.ErrCodeImageNotFound, "image %s has no vector rendition", rec.UUID)
	}
	body, err := c.download(ctx, rec.VectorURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return silhouette.DecodeVector(body)
}

// FetchRaster downloads the smallest raster rendition at least height
// pixels tall, falling back to the largest available when none is. A
// height of zero or less requests the largest rendition.
func (c *Client) FetchRaster(ctx context.Context, rec *ImageRecord, height int) (*silhouette.Raster, error) {
	if len(rec.RasterURLs) == 0 {
		return nil, errors.New(errors.ErrCodeImageNotFound, "image %s has no raster renditions", rec.UUID)
	}

	// Renditions arrive largest first, so the last one at or above the
	// requested height is the smallest sufficient rendition.
	chosen := rec.RasterURLs[0]
	if height > 0 {
		for _, rf := range rec.RasterURLs {
			if rf.Height >= height {
				chosen = rf
			}
		}
	}

	body, err := c.download(ctx, chosen.URL)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return silhouette.DecodeRaster(body)
}

// FetchImage downloads the best available rendition of a silhouette
// image: the vector original when one exists, otherwise the largest
// raster rendition.
func (c *Client) FetchImage(ctx context.Context, uuid string) (silhouette.Image, error) {
	rec, err := c.Image(ctx, uuid)
	if err != nil {
		return nil, err
	}
	if rec.VectorURL != "" {
		return c.FetchVector(ctx, rec)
	}
	if len(rec.RasterURLs) > 0 {
		return c.FetchRaster(ctx, rec, 0)
	}
	return nil, errors.New(errors.ErrCodeImageNotFound, "image %s has no downloadable renditions", rec.UUID)
}

func parseRasterFiles(links []fileLink) []RasterFile {
	files := make([]RasterFile, 0, len(links))
	for _, l := range links {
		rf := RasterFile{URL: l.Href}
		if w, h, ok := parseSizes(l.Sizes); ok {
			rf.Width, rf.Height = w, h
		}
		files = append(files, rf)
	}
	return files
}

// parseSizes splits a rendition size declaration such as "512x341".
func parseSizes(sizes string) (w, h int, ok bool) {
	parts := strings.SplitN(sizes, "x", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	w, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	h, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	return w, h, true
}

type imageResponse struct {
	Attribution *string `json:"attribution"`
	Links       struct {
		License struct {
			Href string `json:"href"`
		} `json:"license"`
		VectorFile *struct {
			Href string `json:"href"`
		} `json:"vectorFile"`
		RasterFiles    []fileLink `json:"rasterFiles"`
		ThumbnailFiles []fileLink `json:"thumbnailFiles"`
	} `json:"_links"`
}

type fileLink struct {
	Href  string `json:"href"`
	Sizes string `json:"sizes"`
}
