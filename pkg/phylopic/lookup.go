package phylopic

import (
	"context"
	"strings"
	"time"

	"github.com/palaeoverse-community/rphylopic/pkg/errors"
	"github.com/palaeoverse-community/rphylopic/pkg/observability"
)

// NodeMatch is a taxonomic node returned by a name lookup, together with
// the UUID of its primary silhouette image.
type NodeMatch struct {
	// Name is the node's canonical name as reported by the API.
	Name string

	// NodeUUID identifies the taxonomic node itself.
	NodeUUID string

	// ImageUUID identifies the node's primary silhouette image. Empty
	// when the node has no image of its own.
	ImageUUID string
}

// Autocomplete returns taxon name suggestions for a partial query.
func (c *Client) Autocomplete(ctx context.Context, query string) ([]string, error) {
	if err := errors.ValidateTaxonName(query); err != nil {
		return nil, err
	}

	q, err := c.buildQuery(ctx)
	if err != nil {
		return nil, err
	}
	q.Set("query", strings.ToLower(strings.TrimSpace(query)))

	var resp autocompleteResponse
	if err := c.get(ctx, "/autocomplete", q, &resp); err != nil {
		return nil, err
	}
	return resp.Matches, nil
}

// ResolveName looks up taxonomic nodes matching a name and returns them
// with their primary image UUIDs. The name is matched via autocomplete
// first: an exact case-insensitive hit is preferred, otherwise the first
// suggestion is used. A name with no matching nodes is an error rather
// than an empty result.
func (c *Client) ResolveName(ctx context.Context, name string) (matches []NodeMatch, err error) {
	start := time.Now()
	defer func() {
		observability.Lookup().OnResolve(ctx, name, len(matches), time.Since(start), err)
	}()

	if err := errors.ValidateTaxonName(name); err != nil {
		return nil, err
	}

	suggestions, err := c.Autocomplete(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(suggestions) == 0 {
		return nil, errors.New(errors.ErrCodeNameNotFound, "no taxon found matching %q", name)
	}
	resolved := suggestions[0]
	for _, s := range suggestions {
		if strings.EqualFold(s, strings.TrimSpace(name)) {
			resolved = s
			break
		}
	}

	q, err := c.buildQuery(ctx)
	if err != nil {
		return nil, err
	}
	q.Set("filter_name", resolved)
	q.Set("embed_primaryImage", "true")

	var resp nodesResponse
	if err := c.get(ctx, "/nodes", q, &resp); err != nil {
		if errors.Is(err, errors.ErrCodeNotFound) {
			return nil, errors.New(errors.ErrCodeNameNotFound, "no taxon found matching %q", name)
		}
		return nil, err
	}
	if len(resp.Embedded.Items) == 0 {
		return nil, errors.New(errors.ErrCodeNameNotFound, "no taxon found matching %q", name)
	}

	matches = make([]NodeMatch, 0, len(resp.Embedded.Items))
	for _, item := range resp.Embedded.Items {
		m := NodeMatch{
			Name:     item.Links.Self.Title,
			NodeUUID: uuidFromHref(item.Links.Self.Href),
		}
		if item.Links.PrimaryImage != nil {
			m.ImageUUID = uuidFromHref(item.Links.PrimaryImage.Href)
		}
		matches = append(matches, m)
	}
	return matches, nil
}

// ImageUUID resolves a taxon name to the UUID of its first matching
// node's primary silhouette image.
func (c *Client) ImageUUID(ctx context.Context, name string) (string, error) {
	matches, err := c.ResolveName(ctx, name)
	if err != nil {
		return "", err
	}
	for _, m := range matches {
		if m.ImageUUID != "" {
			return m.ImageUUID, nil
		}
	}
	return "", errors.New(errors.ErrCodeImageNotFound, "no silhouette image found for %q", name)
}

// uuidFromHref extracts the trailing UUID path segment from a HAL link.
func uuidFromHref(href string) string {
	if i := strings.IndexByte(href, '?'); i >= 0 {
		href = href[:i]
	}
	href = strings.TrimSuffix(href, "/")
	if i := strings.LastIndexByte(href, '/'); i >= 0 {
		return href[i+1:]
	}
	return href
}

type autocompleteResponse struct {
	Matches []string `json:"matches"`
}

type nodesResponse struct {
	Embedded struct {
		Items []nodeItem `json:"items"`
	} `json:"_embedded"`
}

type nodeItem struct {
	Links struct {
		Self struct {
			Href  string `json:"href"`
			Title string `json:"title"`
		} `json:"self"`
		PrimaryImage *struct {
			Href string `json:"href"`
		} `json:"primaryImage"`
	} `json:"_links"`
}
