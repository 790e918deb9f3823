package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// resolveCommand creates the resolve command for taxonomic name lookup.
func (c *CLI) resolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <name>",
		Short: "Resolve a taxonomic name to silhouette image UUIDs",
		Long: `Resolve a taxonomic name against the PhyloPic database.

The name is first matched against PhyloPic's autocomplete index, so partial
names and minor misspellings usually still resolve. Every taxon node carrying
the resolved name is listed together with the UUID of its primary silhouette
image, ready to pass to 'fetch' or 'chart'.

Examples:
  rphylopic resolve "Canis lupus"
  rphylopic resolve tyrannosaurus`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runResolve(cmd.Context(), args[0])
		},
	}
	return cmd
}

// runResolve performs the lookup and prints the matching nodes.
func (c *CLI) runResolve(ctx context.Context, name string) error {
	client := c.newClient()

	spinner := newSpinner(ctx, fmt.Sprintf("Resolving %s...", name))
	spinner.Start()

	prog := newProgress(c.Logger)
	matches, err := client.ResolveName(ctx, name)
	if err != nil {
		spinner.StopWithError("Name lookup failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Resolved %d node(s)", len(matches)))

	resolved := matches[0].Name
	if !strings.EqualFold(resolved, strings.TrimSpace(name)) {
		printWarning("No exact match for %q, closest is %s", name, StyleHighlight.Render(resolved))
		printNewline()
	}

	printSuccess("Found %d node(s) matching %s", len(matches), StyleHighlight.Render(resolved))
	printNewline()

	first := ""
	for _, m := range matches {
		if m.ImageUUID == "" {
			printDetail("%s (no silhouette)", m.Name)
			continue
		}
		if first == "" {
			first = m.ImageUUID
		}
		printInfo("%s", StyleHighlight.Render(m.Name))
		printKeyValue("Node", m.NodeUUID)
		printKeyValue("Image", m.ImageUUID)
	}

	if first != "" {
		printNextStep("Download", "rphylopic fetch "+first)
	} else {
		printNewline()
		printWarning("None of the matching nodes has a silhouette image")
	}
	return nil
}
