// Package chart places PhyloPic silhouettes on gonum plots.
//
// # Overview
//
// This package is the top of the silhouette pipeline: it takes a source
// (a decoded image, a taxonomic name, or an image UUID), applies
// transforms and styling, and yields a [Layer] that plugs into
// [gonum.org/v1/plot] as an ordinary plotter.
//
// # Usage
//
//	client := phylopic.NewClient()
//
//	opts := chart.DefaultOptions()
//	opts.Name = "Canis lupus"
//	opts.Position = &chart.Position{X: 5, Y: 5, Height: 2}
//
//	layer, err := chart.AddSilhouette(ctx, client, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	p := plot.New()
//	p.Add(layer)
//
// # Placement
//
// A positioned layer occupies a rectangle in data coordinates: Height
// data units tall, centered on (X, Y), with the width following from
// the silhouette's aspect ratio so it never distorts. The rectangle
// participates in axis autoscaling. Without a position the layer fills
// the plotting area, centered, and leaves the axes alone, which suits
// watermark-style backgrounds.
//
// # Transforms and Styling
//
// Flips are applied before rotation; the two orders produce different
// images and the flip-first order is the contract. Rotation is
// counterclockwise in degrees. Vector silhouettes accept any angle and
// are styled at paint time, staying sharp at every output size. Raster
// silhouettes rotate only in multiples of 90 degrees and have opacity
// and fill baked into their pixels when the layer is built.
//
// # Failure Behavior
//
// [AddSilhouette] validates its options before resolving anything, so
// invalid input fails without a network round trip. Resolution and
// download errors are terminal: no retries, no placeholder layers.
package chart
