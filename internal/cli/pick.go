package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/palaeoverse-community/rphylopic/pkg/errors"
	"github.com/palaeoverse-community/rphylopic/pkg/phylopic"
)

// pickCommand creates the pick command for interactive silhouette selection.
func (c *CLI) pickCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pick <name>",
		Short: "Interactively pick a silhouette for a taxonomic name",
		Long: `Interactive workflow to choose a silhouette.

Resolves the name, lets you pick one of the matching taxon nodes, then one of
the available renditions of that node's primary image. Prints the image UUID,
the attribution line, and a ready-to-run fetch command for the selection.

Examples:
  rphylopic pick "Canis lupus"
  rphylopic pick trilobita`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPick(cmd.Context(), args[0])
		},
	}
	return cmd
}

func (c *CLI) runPick(ctx context.Context, name string) error {
	client := c.newClient()

	spinner := newSpinner(ctx, fmt.Sprintf("Resolving %s...", name))
	spinner.Start()
	matches, err := client.ResolveName(ctx, name)
	if err != nil {
		spinner.StopWithError("Name lookup failed")
		return err
	}
	spinner.Stop()

	match, err := pickMatch(matches)
	if err != nil || match == nil {
		return err
	}

	spinner = newSpinner(ctx, fmt.Sprintf("Loading image for %s...", match.Name))
	spinner.Start()
	rec, err := client.Image(ctx, match.ImageUUID)
	if err != nil {
		spinner.StopWithError("Image lookup failed")
		return err
	}
	spinner.Stop()

	rendition, err := pickRendition(rec)
	if err != nil || rendition == nil {
		return err
	}

	printSuccess("Selected %s", StyleHighlight.Render(match.Name))
	printKeyValue("Image", rec.UUID)
	printKeyValue("Rendition", rendition.Label)
	printKeyValue("Credit", rec.Citation().String())

	printNextStep("Download", fetchHint(rec.UUID, rendition))
	return nil
}

// pickMatch selects a taxon node, interactively when there is a choice.
// A nil match with a nil error means the user quit without selecting.
func pickMatch(matches []phylopic.NodeMatch) (*phylopic.NodeMatch, error) {
	withImage := make([]phylopic.NodeMatch, 0, len(matches))
	for _, m := range matches {
		if m.ImageUUID != "" {
			withImage = append(withImage, m)
		}
	}
	if len(withImage) == 0 {
		printError("None of the %d matching node(s) has a silhouette image", len(matches))
		return nil, errors.New(errors.ErrCodeImageNotFound, "no silhouette image among %d matching nodes", len(matches))
	}
	if len(withImage) == 1 {
		printInfo("Found: %s", StyleHighlight.Render(withImage[0].Name))
		return &withImage[0], nil
	}

	printInfo("Found %d taxon nodes", len(matches))
	printNewline()

	p := tea.NewProgram(NewMatchListModel(matches))
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}
	fm, ok := finalModel.(MatchListModel)
	if !ok || fm.Selected == nil {
		printDetail("No selection made")
		return nil, nil
	}
	return fm.Selected, nil
}

// pickRendition selects a rendition, interactively when there is a choice.
func pickRendition(rec *phylopic.ImageRecord) (*Rendition, error) {
	renditions := renditionsFor(rec)
	if len(renditions) == 0 {
		printError("Image %s has no downloadable renditions", rec.UUID)
		return nil, errors.New(errors.ErrCodeImageNotFound, "no downloadable renditions for image %s", rec.UUID)
	}
	if len(renditions) == 1 {
		printInfo("Found: %s rendition", renditions[0].Label)
		return &renditions[0], nil
	}

	p := tea.NewProgram(NewRenditionListModel(renditions))
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}
	fm, ok := finalModel.(RenditionListModel)
	if !ok || fm.Selected == nil {
		printDetail("No rendition selected")
		return nil, nil
	}
	return fm.Selected, nil
}

// renditionsFor lists the downloadable forms of an image, vector first.
func renditionsFor(rec *phylopic.ImageRecord) []Rendition {
	var renditions []Rendition
	if rec.VectorURL != "" {
		renditions = append(renditions, Rendition{Label: "vector", Format: "svg"})
	}
	for _, rf := range rec.RasterURLs {
		renditions = append(renditions, Rendition{
			Label:  fmt.Sprintf("%dx%d", rf.Width, rf.Height),
			Format: "png",
			Height: rf.Height,
		})
	}
	return renditions
}

// fetchHint builds the fetch invocation matching a rendition choice.
func fetchHint(uuid string, r *Rendition) string {
	if r.Format == "svg" {
		return fmt.Sprintf("rphylopic fetch %s --format svg", uuid)
	}
	return fmt.Sprintf("rphylopic fetch %s --format png --height %d", uuid, r.Height)
}
