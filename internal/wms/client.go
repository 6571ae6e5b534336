package wms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/crimson-sun/wmsprobe/internal/model"
)

// Client issues plain GET requests against a WMS endpoint.
// Relative references resolve against the endpoint URL, the way a page
// served from the endpoint would resolve them.
type Client struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
}

// APIError represents a non-2xx HTTP response.
type APIError struct {
	URL        string
	StatusCode int
	Body       string // first 512 bytes
}

func (e *APIError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d: %s", e.URL, e.StatusCode, e.Body)
}

// Option configures Client behavior.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout. Zero means no timeout.
// A client passed with WithHTTPClient is copied, not modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a Client for the given WMS endpoint, e.g.
// "http://localhost:8080/ncWMS2/wms".
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the WMS endpoint the client was created with.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Resolve turns ref into an absolute URL relative to the endpoint.
func (c *Client) Resolve(ref string) (string, error) {
	base, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("wms: parse endpoint %q: %w", c.endpoint, err)
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("wms: parse %q: %w", ref, err)
	}
	return base.ResolveReference(u).String(), nil
}

// GetText performs a GET and returns the body as text. The call blocks
// until the whole body has been read.
//
// Deprecated: GetText ties the caller to the round trip. Use Go and wait on
// the returned Pending instead.
func (c *Client) GetText(ctx context.Context, ref string) (string, error) {
	body, _, err := c.get(ctx, ref)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// GetBytes performs a GET and returns the body and its Content-Type.
func (c *Client) GetBytes(ctx context.Context, ref string) ([]byte, string, error) {
	return c.get(ctx, ref)
}

// GetJSON performs a GET and unmarshals the JSON response into dest.
// Returns *APIError for non-2xx responses.
func (c *Client) GetJSON(ctx context.Context, ref string, dest any) error {
	body, _, err := c.get(ctx, ref)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("wms: decode %s: %w", ref, err)
	}
	return nil
}

// MenuRef returns the GetMetadata reference for the layer menu. An empty
// dataset requests the menu of every dataset on the server.
func MenuRef(dataset string) string {
	q := url.Values{}
	q.Set("REQUEST", "GetMetadata")
	q.Set("ITEM", "menu")
	if dataset != "" {
		q.Set("DATASET", dataset)
	}
	return "?" + q.Encode()
}

// Menu fetches the layer menu document.
func (c *Client) Menu(ctx context.Context, dataset string) (model.LayerTree, error) {
	var tree model.LayerTree
	if err := c.GetJSON(ctx, MenuRef(dataset), &tree); err != nil {
		return model.LayerTree{}, err
	}
	return tree, nil
}

func (c *Client) get(ctx context.Context, ref string) ([]byte, string, error) {
	fullURL, err := c.Resolve(ref)
	if err != nil {
		return nil, "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("wms: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("wms: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("wms: read %s: %w", fullURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyStr := string(body)
		if len(bodyStr) > 512 {
			bodyStr = bodyStr[:512]
		}
		return nil, "", &APIError{URL: fullURL, StatusCode: resp.StatusCode, Body: bodyStr}
	}
	return body, resp.Header.Get("Content-Type"), nil
}
