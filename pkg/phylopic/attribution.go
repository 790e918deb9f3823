package phylopic

import (
	"context"
	"fmt"
	"strings"
)

// Attribution records who created a silhouette and under which license
// it is distributed, suitable for printing alongside a figure.
type Attribution struct {
	UUID    string
	Creator string
	License string
}

// String formats the attribution as a single citation line.
func (a Attribution) String() string {
	creator := a.Creator
	if creator == "" {
		creator = "an anonymous contributor"
	}
	if a.License == "" {
		return fmt.Sprintf("Silhouette by %s", creator)
	}
	return fmt.Sprintf("Silhouette by %s, %s", creator, a.License)
}

// Citation returns the attribution for an already fetched image record.
func (rec *ImageRecord) Citation() Attribution {
	return Attribution{
		UUID:    rec.UUID,
		Creator: rec.Attribution,
		License: licenseName(rec.License),
	}
}

// AttributionFor fetches attribution details for each image UUID in turn.
func (c *Client) AttributionFor(ctx context.Context, uuids ...string) ([]Attribution, error) {
	attrs := make([]Attribution, 0, len(uuids))
	for _, uuid := range uuids {
		rec, err := c.Image(ctx, uuid)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, rec.Citation())
	}
	return attrs, nil
}

// licenseName turns a Creative Commons license URL into a short display
// name, for example "CC BY-SA 3.0" or "CC0 1.0".
func licenseName(rawURL string) string {
	u := strings.TrimSuffix(rawURL, "/")
	if u == "" {
		return ""
	}
	if strings.Contains(u, "publicdomain/zero") || strings.Contains(u, "publicdomain/mark") {
		return "CC0 1.0"
	}
	parts := strings.Split(u, "/")
	if len(parts) >= 2 {
		code, version := parts[len(parts)-2], parts[len(parts)-1]
		if strings.ContainsAny(version, "0123456789") && code != "" {
			return "CC " + strings.ToUpper(code) + " " + version
		}
	}
	return u
}
