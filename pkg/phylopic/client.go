package phylopic

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/palaeoverse-community/rphylopic/pkg/buildinfo"
	"github.com/palaeoverse-community/rphylopic/pkg/errors"
	"github.com/palaeoverse-community/rphylopic/pkg/observability"
)

const (
	// DefaultBaseURL is the public PhyloPic API root.
	DefaultBaseURL = "https://api.phylopic.org"

	httpTimeout = 10 * time.Second
)

// Client provides access to the PhyloPic API for silhouette lookups and
// downloads. Every call goes straight to the service: failures surface
// immediately, nothing is retried, and nothing is cached.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string

	// build is the API build number required on most endpoints. It is
	// fetched lazily from the API root and kept for the client lifetime.
	build int
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithContact appends contact details to the User-Agent header, following
// the API's etiquette of identifying who to reach about traffic.
func WithContact(contact string) Option {
	return func(c *Client) {
		if contact != "" {
			c.userAgent += " (" + contact + ")"
		}
	}
}

// NewClient creates a PhyloPic API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: httpTimeout},
		baseURL:   DefaultBaseURL,
		userAgent: "rphylopic/" + buildinfo.Version,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs a GET against an API path and JSON-decodes the response.
func (c *Client) get(ctx context.Context, path string, query url.Values, v any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to build request for %s", path)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	observability.API().OnRequest(ctx, http.MethodGet, path)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observability.API().OnError(ctx, http.MethodGet, path, err)
		return transportError(err, path)
	}
	defer resp.Body.Close()
	observability.API().OnResponse(ctx, http.MethodGet, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeDecode, err, "failed to decode response from %s", path)
	}
	return nil
}

// download fetches a file URL (vector or raster rendition) and returns
// the response body. The caller must close it.
func (c *Client) download(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to build request for %s", rawURL)
	}
	req.Header.Set("User-Agent", c.userAgent)

	observability.API().OnRequest(ctx, http.MethodGet, req.URL.Path)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observability.API().OnError(ctx, http.MethodGet, req.URL.Path, err)
		return nil, transportError(err, rawURL)
	}
	observability.API().OnResponse(ctx, http.MethodGet, req.URL.Path, resp.StatusCode, time.Since(start))
	if err := checkStatus(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

// buildNumber returns the current API build, fetching it from the root
// endpoint on first use.
func (c *Client) buildNumber(ctx context.Context) (int, error) {
	if c.build != 0 {
		return c.build, nil
	}

	var root rootResponse
	if err := c.get(ctx, "/", nil, &root); err != nil {
		return 0, err
	}
	if root.Build == 0 {
		return 0, errors.New(errors.ErrCodeDecode, "API root did not report a build number")
	}
	c.build = root.Build
	return c.build, nil
}

// buildQuery returns query values pre-populated with the API build number.
func (c *Client) buildQuery(ctx context.Context) (url.Values, error) {
	build, err := c.buildNumber(ctx)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("build", strconv.Itoa(build))
	return q, nil
}

func transportError(err error, target string) error {
	if uerr, ok := err.(*url.Error); ok && uerr.Timeout() {
		return errors.Wrap(errors.ErrCodeTimeout, err, "request to %s timed out", target)
	}
	return errors.Wrap(errors.ErrCodeNetwork, err, "request to %s failed", target)
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "resource not found: %s", resp.Request.URL.Path)
	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		cause := &errors.RateLimitedError{RetryAfter: retryAfter}
		return errors.Wrap(errors.ErrCodeRateLimited, cause, "PhyloPic API rate limit reached")
	case resp.StatusCode >= 500:
		return errors.New(errors.ErrCodeNetwork, "service error: status %d", resp.StatusCode)
	default:
		return errors.New(errors.ErrCodeNetwork, "unexpected status %d from %s", resp.StatusCode, resp.Request.URL.Path)
	}
}

type rootResponse struct {
	Build int `json:"build"`
}
