package cli

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/palaeoverse-community/rphylopic/pkg/errors"
	"github.com/palaeoverse-community/rphylopic/pkg/phylopic"
	"github.com/palaeoverse-community/rphylopic/pkg/silhouette"
)

const (
	formatSVG = "svg" // vector source exactly as published
	formatPNG = "png" // rasterized, honors transform flags

	defaultFetchHeight = 512 // raster output height in pixels
)

// fetchOpts holds the command-line flags for the fetch command.
type fetchOpts struct {
	output  string  // output file path, "-" for stdout, default <uuid>.<format>
	format  string  // "svg", "png", or empty to pick based on the image
	height  int     // raster output height in pixels
	angle   float64 // rotation in degrees counterclockwise
	flipH   bool    // mirror horizontally, applied before rotation
	flipV   bool    // mirror vertically, applied before rotation
	fill    string  // fill color as hex, e.g. "#708090"
	opacity float64 // opacity in [0, 1]
}

// styled reports whether any flag deviates from the published silhouette.
func (o *fetchOpts) styled() bool {
	return o.angle != 0 || o.flipH || o.flipV || o.fill != "" || o.opacity != 1
}

// fetchCommand creates the fetch command for downloading silhouettes.
func (c *CLI) fetchCommand() *cobra.Command {
	opts := fetchOpts{
		height:  defaultFetchHeight,
		opacity: 1,
	}

	cmd := &cobra.Command{
		Use:   "fetch <name-or-uuid>",
		Short: "Download a silhouette as SVG or PNG",
		Long: `Download a silhouette image from PhyloPic.

The argument is either an image UUID or a taxonomic name; names are resolved
to the first matching node that has a silhouette. SVG output is the published
vector source, byte for byte. PNG output is rasterized and honors the
transform flags: rotation, mirroring, fill color, and opacity. Mirroring is
applied before rotation. Raster source images only rotate in quarter turns.

Examples:
  rphylopic fetch "Canis lupus"
  rphylopic fetch e547cd01-7dd1-495b-8239-52cf9971a609 --format png --height 256
  rphylopic fetch trilobita --format png --color "#708090" --angle 90 -o trilobite.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			return c.runFetch(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, '-' for stdout (default <uuid>.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg, png (default svg when the image has a vector)")
	cmd.Flags().IntVar(&opts.height, "height", opts.height, "raster output height in pixels")
	cmd.Flags().Float64Var(&opts.angle, "angle", 0, "rotation in degrees counterclockwise")
	cmd.Flags().BoolVar(&opts.flipH, "flip-h", false, "mirror horizontally")
	cmd.Flags().BoolVar(&opts.flipV, "flip-v", false, "mirror vertically")
	cmd.Flags().StringVar(&opts.fill, "color", "", "fill color as hex, e.g. '#708090'")
	cmd.Flags().Float64Var(&opts.opacity, "opacity", opts.opacity, "opacity between 0 and 1")

	return cmd
}

// validate checks flag values before any network traffic.
func (o *fetchOpts) validate() error {
	switch o.format {
	case "", formatSVG, formatPNG:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown format %q, expected svg or png", o.format)
	}
	if o.format == formatSVG && o.styled() {
		return errors.New(errors.ErrCodeInvalidConfig, "transform and style flags require --format png; SVG output is the published source")
	}
	if err := errors.ValidateOpacity(o.opacity); err != nil {
		return err
	}
	if err := errors.ValidateAngle(o.angle); err != nil {
		return err
	}
	if o.height <= 0 {
		return errors.New(errors.ErrCodeInvalidSize, "height must be positive, got %d", o.height)
	}
	if o.output != "" && o.output != "-" {
		return errors.ValidateOutputPath(o.output)
	}
	return nil
}

func (c *CLI) runFetch(ctx context.Context, arg string, opts *fetchOpts) error {
	client := c.newClient()
	prog := newProgress(c.Logger)

	spinner := newSpinner(ctx, fmt.Sprintf("Locating %s...", arg))
	spinner.Start()

	uuid := arg
	if !isUUID(arg) {
		var err error
		uuid, err = client.ImageUUID(ctx, arg)
		if err != nil {
			spinner.StopWithError("Name lookup failed")
			return err
		}
		c.Logger.Debug("Resolved name", "name", arg, "uuid", uuid)
	}

	spinner.SetMessage("Fetching image record...")
	rec, err := client.Image(ctx, uuid)
	if err != nil {
		spinner.StopWithError("Image lookup failed")
		return err
	}

	format := opts.format
	if format == "" {
		format = formatPNG
		if rec.VectorURL != "" && !opts.styled() {
			format = formatSVG
		}
	}

	spinner.SetMessage("Downloading rendition...")
	var write func(io.Writer) error
	switch format {
	case formatSVG:
		write, err = fetchSVG(ctx, client, rec)
	case formatPNG:
		write, err = fetchPNG(ctx, client, rec, opts)
	}
	if err != nil {
		spinner.StopWithError("Download failed")
		return err
	}
	spinner.Stop()

	path := opts.output
	if path == "" {
		path = fmt.Sprintf("%s.%s", uuid, format)
	}
	if err := writeOutput(path, write); err != nil {
		return err
	}
	prog.done("Fetched " + uuid)

	if path != "-" {
		printSuccess("Silhouette saved")
		printFile(path)
		printDetail("%s", rec.Citation())
		printNextStep("Place it on a chart", fmt.Sprintf("rphylopic chart %s --x 5 --y 5 --size 2", uuid))
	}
	return nil
}

// fetchSVG downloads the vector source and passes it through unchanged.
func fetchSVG(ctx context.Context, client *phylopic.Client, rec *phylopic.ImageRecord) (func(io.Writer) error, error) {
	vec, err := client.FetchVector(ctx, rec)
	if err != nil {
		return nil, err
	}
	return vec.EncodeSVG, nil
}

// fetchPNG downloads the best rendition and applies the requested transforms.
// A vector source is transformed and rasterized at the requested height; a
// raster source is transformed pixel-wise and resized.
func fetchPNG(ctx context.Context, client *phylopic.Client, rec *phylopic.ImageRecord, opts *fetchOpts) (func(io.Writer) error, error) {
	var fill color.Color
	if opts.fill != "" {
		parsed, err := parseFill(opts.fill)
		if err != nil {
			return nil, err
		}
		fill = parsed
	}
	// A nil fill keeps the published colors.
	style := silhouette.Style{Opacity: opts.opacity, Fill: fill}

	if rec.VectorURL != "" {
		vec, err := client.FetchVector(ctx, rec)
		if err != nil {
			return nil, err
		}
		img, err := transformImage(vec, opts)
		if err != nil {
			return nil, err
		}
		raster, err := img.(*silhouette.Vector).RasterizeHeight(opts.height, style)
		if err != nil {
			return nil, err
		}
		return raster.EncodePNG, nil
	}

	raster, err := client.FetchRaster(ctx, rec, opts.height)
	if err != nil {
		return nil, err
	}
	img, err := transformImage(raster, opts)
	if err != nil {
		return nil, err
	}
	out := img.(*silhouette.Raster)
	if out.Height() != opts.height {
		if out, err = out.Resize(opts.height); err != nil {
			return nil, err
		}
	}
	if opts.opacity != 1 || fill != nil {
		out = silhouette.RecolorRaster(out, opts.opacity, fill)
	}
	return out.EncodePNG, nil
}

// transformImage applies mirroring then rotation.
func transformImage(img silhouette.Image, opts *fetchOpts) (silhouette.Image, error) {
	img, err := silhouette.Flip(img, opts.flipH, opts.flipV)
	if err != nil {
		return nil, err
	}
	return silhouette.Rotate(img, opts.angle)
}

// writeOutput writes via w to path, with "-" meaning stdout.
func writeOutput(path string, w func(io.Writer) error) error {
	if path == "-" {
		return w(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create output file %s", path)
	}
	if err := w(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
