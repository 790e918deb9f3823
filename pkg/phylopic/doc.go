// Package phylopic provides an HTTP client for the PhyloPic API.
//
// # Overview
//
// This package resolves taxonomic names to silhouette images and
// downloads those images from PhyloPic (https://api.phylopic.org). It
// is the lookup and transport layer underneath silhouette placement:
// callers hand it a name or a UUID and get back a decoded
// [silhouette.Image] ready for transformation and rendering.
//
// # Usage
//
//	client := phylopic.NewClient()
//
//	uuid, err := client.ImageUUID(ctx, "Canis lupus")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	img, err := client.FetchImage(ctx, uuid)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Name Resolution
//
// [Client.ResolveName] matches a name against the API's autocomplete
// index, preferring an exact case-insensitive hit, then lists the
// taxonomic nodes carrying that name together with their primary image
// UUIDs. A name that matches nothing is reported as an error with code
// NAME_NOT_FOUND rather than an empty result, so callers never have to
// distinguish empty from failed.
//
// # Renditions
//
// Every PhyloPic image is served in one or more renditions: usually an
// original SVG plus pre-rendered PNGs at several sizes.
// [Client.FetchImage] prefers the vector original and falls back to the
// largest raster. [Client.FetchRaster] picks the smallest rendition at
// least as tall as the caller needs, avoiding oversized downloads.
//
// # Attribution
//
// Silhouettes are contributed under Creative Commons licenses, and
// reusing one in a figure calls for credit. [Client.AttributionFor]
// collects creator and license details per image UUID, and
// [Attribution.String] formats them as a citation line.
//
// # Failure Behavior
//
// Calls go straight to the service every time. There is no response
// cache, and failed requests are never retried: a network error,
// timeout, or rate limit surfaces immediately with a matching
// [errors.Code]. Rate-limit responses carry the server's Retry-After
// hint so callers can decide for themselves when to try again.
//
// [silhouette.Image]: github.com/palaeoverse-community/rphylopic/pkg/silhouette.Image
// [errors.Code]: github.com/palaeoverse-community/rphylopic/pkg/errors.Code
package phylopic
