package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/palaeoverse-community/rphylopic/pkg/chart"
	"github.com/palaeoverse-community/rphylopic/pkg/errors"
)

const (
	defaultChartOutput = "chart.png"
	defaultChartWidth  = 800 // canvas width in points
	defaultChartHeight = 600 // canvas height in points
)

// chartOpts holds the command-line flags for the chart command.
type chartOpts struct {
	output  string  // output PNG file path
	title   string  // chart title, empty for none
	points  string  // CSV file of x,y scatter points, empty for none
	x       float64 // horizontal placement in data coordinates
	y       float64 // vertical placement in data coordinates
	size    float64 // silhouette height in data units
	width   float64 // canvas width in points
	height  float64 // canvas height in points
	angle   float64 // rotation in degrees counterclockwise
	flipH   bool    // mirror horizontally, applied before rotation
	flipV   bool    // mirror vertically, applied before rotation
	fill    string  // fill color as hex, e.g. "#708090"
	opacity float64 // opacity in [0, 1]
}

// chartCommand creates the chart command for placing a silhouette on a plot.
func (c *CLI) chartCommand() *cobra.Command {
	opts := chartOpts{
		width:   defaultChartWidth,
		height:  defaultChartHeight,
		opacity: 1,
	}

	cmd := &cobra.Command{
		Use:   "chart <name-or-uuid>",
		Short: "Place a silhouette on a chart and save it as PNG",
		Long: `Render a chart with a silhouette placed on it.

The argument is either an image UUID or a taxonomic name. Without placement
flags the silhouette fills the canvas and the axes are hidden. With --x, --y,
and --size the silhouette is anchored at that point in data coordinates,
--size gives its height in data units, and its width follows from the
image's aspect ratio.

With --points, a CSV file of x,y pairs (an optional header row is skipped)
is drawn as a scatter under the silhouette, so the placement can be judged
against real data.

Examples:
  rphylopic chart "Canis lupus"
  rphylopic chart trilobita --x 5 --y 5 --size 2 --title "Trilobita" -o trilobite.png
  rphylopic chart trilobita --points occurrences.csv --x 470 --y 12 --size 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			positioned, err := validateChartFlags(cmd, &opts)
			if err != nil {
				return err
			}
			return c.runChart(cmd.Context(), args[0], &opts, positioned)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", defaultChartOutput, "output PNG file")
	cmd.Flags().StringVar(&opts.title, "title", "", "chart title")
	cmd.Flags().StringVar(&opts.points, "points", "", "CSV file of x,y points to scatter behind the silhouette")
	cmd.Flags().Float64Var(&opts.x, "x", 0, "horizontal placement in data coordinates")
	cmd.Flags().Float64Var(&opts.y, "y", 0, "vertical placement in data coordinates")
	cmd.Flags().Float64Var(&opts.size, "size", 0, "silhouette height in data units")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "canvas width in points")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "canvas height in points")
	cmd.Flags().Float64Var(&opts.angle, "angle", 0, "rotation in degrees counterclockwise")
	cmd.Flags().BoolVar(&opts.flipH, "flip-h", false, "mirror horizontally")
	cmd.Flags().BoolVar(&opts.flipV, "flip-v", false, "mirror vertically")
	cmd.Flags().StringVar(&opts.fill, "color", "", "fill color as hex, e.g. '#708090'")
	cmd.Flags().Float64Var(&opts.opacity, "opacity", opts.opacity, "opacity between 0 and 1")

	return cmd
}

// validateChartFlags checks the canvas flags and the placement trio, which
// must be given together or not at all. It reports whether a placement was
// requested. Silhouette flags are checked later, before any network traffic.
func validateChartFlags(cmd *cobra.Command, opts *chartOpts) (bool, error) {
	set := 0
	for _, name := range []string{"x", "y", "size"} {
		if cmd.Flags().Changed(name) {
			set++
		}
	}
	if set != 0 && set != 3 {
		return false, errors.New(errors.ErrCodeInvalidConfig, "flags --x, --y, and --size must be given together")
	}
	if opts.width <= 0 || opts.height <= 0 {
		return false, errors.New(errors.ErrCodeInvalidSize, "canvas dimensions must be positive, got %gx%g", opts.width, opts.height)
	}
	if err := errors.ValidateOutputPath(opts.output); err != nil {
		return false, err
	}
	return set == 3, nil
}

func (c *CLI) runChart(ctx context.Context, arg string, opts *chartOpts, positioned bool) error {
	var pts plotter.XYs
	if opts.points != "" {
		var err error
		if pts, err = loadPoints(opts.points); err != nil {
			return err
		}
	}

	layerOpts := chart.DefaultOptions()
	layerOpts.Opacity = opts.opacity
	layerOpts.FlipHorizontal = opts.flipH
	layerOpts.FlipVertical = opts.flipV
	layerOpts.Angle = opts.angle
	if opts.fill != "" {
		fill, err := parseFill(opts.fill)
		if err != nil {
			return err
		}
		layerOpts.Fill = fill
	}
	if positioned {
		layerOpts.Position = &chart.Position{X: opts.x, Y: opts.y, Height: opts.size}
	}

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
	layerOpts.UUID = uuid

	spinner.SetMessage("Fetching silhouette...")
	layer, err := chart.AddSilhouette(ctx, client, layerOpts)
	if err != nil {
		spinner.StopWithError("Silhouette failed")
		return err
	}

	spinner.SetMessage("Rendering chart...")
	p := plot.New()
	if opts.title != "" {
		p.Title.Text = opts.title
	}
	if len(pts) > 0 {
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			spinner.Stop()
			return errors.Wrap(errors.ErrCodeInternal, err, "failed to build scatter")
		}
		scatter.GlyphStyle.Radius = vg.Points(2)
		p.Add(scatter)
	}
	if !layer.Positioned() && len(pts) == 0 {
		p.HideAxes()
	}
	// The silhouette draws after the scatter, so it sits on top.
	p.Add(layer)

	err = writeOutput(opts.output, func(w io.Writer) error {
		return chart.RenderPNG(p, vg.Points(opts.width), vg.Points(opts.height), w)
	})
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	prog.done("Chart rendered")

	printSuccess("Chart saved")
	printFile(opts.output)
	printNextStep("Credit the creator", "rphylopic attribution "+uuid)
	return nil
}

// loadPoints reads a two-column CSV of x,y coordinates. A non-numeric first
// row is treated as a header and skipped.
func loadPoints(path string) (plotter.XYs, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "failed to open points file %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "failed to parse points file %s", path)
	}

	var pts plotter.XYs
	for i, record := range records {
		if len(record) < 2 {
			return nil, errors.New(errors.ErrCodeDecode, "points file %s row %d: need two columns x,y", path, i+1)
		}
		x, errX := strconv.ParseFloat(record[0], 64)
		y, errY := strconv.ParseFloat(record[1], 64)
		if errX != nil || errY != nil {
			if i == 0 {
				continue
			}
			return nil, errors.New(errors.ErrCodeDecode, "points file %s row %d: non-numeric coordinates", path, i+1)
		}
		pts = append(pts, plotter.XY{X: x, Y: y})
	}
	return pts, nil
}
