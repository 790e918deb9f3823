package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// attributionCommand creates the attribution command for printing credits.
func (c *CLI) attributionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attribution <name-or-uuid>...",
		Short: "Print attribution lines for silhouettes",
		Long: `Print creator and license attribution for silhouettes.

Each argument is an image UUID or a taxonomic name; names resolve to the
first matching node with a silhouette. PhyloPic silhouettes are free to use,
but many licenses require crediting the creator. The printed lines are
suitable for a figure caption.

Examples:
  rphylopic attribution e547cd01-7dd1-495b-8239-52cf9971a609
  rphylopic attribution "Canis lupus" trilobita`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAttribution(cmd.Context(), args)
		},
	}
	return cmd
}

func (c *CLI) runAttribution(ctx context.Context, args []string) error {
	client := c.newClient()

	spinner := newSpinner(ctx, "Collecting attribution...")
	spinner.Start()

	uuids := make([]string, 0, len(args))
	for _, arg := range args {
		if isUUID(arg) {
			uuids = append(uuids, arg)
			continue
		}
		uuid, err := client.ImageUUID(ctx, arg)
		if err != nil {
			spinner.StopWithError("Name lookup failed")
			return err
		}
		c.Logger.Debug("Resolved name", "name", arg, "uuid", uuid)
		uuids = append(uuids, uuid)
	}

	attrs, err := client.AttributionFor(ctx, uuids...)
	if err != nil {
		spinner.StopWithError("Attribution lookup failed")
		return err
	}
	spinner.Stop()

	for _, a := range attrs {
		printSuccess("%s", a)
		printDetail("%s", a.UUID)
	}
	return nil
}
