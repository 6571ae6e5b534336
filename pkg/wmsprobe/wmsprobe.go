package wmsprobe

import (
	"context"
	"fmt"
	"net/url"

	"github.com/crimson-sun/wmsprobe/internal/menu"
	"github.com/crimson-sun/wmsprobe/internal/model"
	"github.com/crimson-sun/wmsprobe/internal/wms"
)

// LayerNode is one entry of a layer menu.
type LayerNode = model.LayerNode

// LayerTree is the root of a layer menu document.
type LayerTree = model.LayerTree

// Pending is the deferred result of GetAsync.
type Pending = wms.Pending

// APIError is returned for non-2xx responses.
type APIError = wms.APIError

// Probe talks to one WMS endpoint.
type Probe struct {
	client  *wms.Client
	dataset string
	request wms.MapRequest
}

// New creates a Probe for endpoint. It fails if the endpoint is not an
// absolute http(s) URL or the GetMap options are invalid.
func New(endpoint string, opts ...Option) (*Probe, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("wmsprobe: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("wmsprobe: endpoint must be an http(s) URL, got %q", endpoint)
	}
	if err := o.request.Validate(); err != nil {
		return nil, fmt.Errorf("wmsprobe: %w", err)
	}

	clientOpts := []wms.Option{wms.WithTimeout(o.timeout)}
	if o.httpClient != nil {
		clientOpts = append(clientOpts, wms.WithHTTPClient(o.httpClient))
	}
	return &Probe{
		client:  wms.New(endpoint, clientOpts...),
		dataset: o.dataset,
		request: o.request,
	}, nil
}

// Menu fetches the layer menu and renders it as nested HTML.
func (p *Probe) Menu(ctx context.Context) (string, error) {
	return menu.Fetch(ctx, p.client, p.dataset)
}

// Tree fetches the layer menu document without rendering it.
func (p *Probe) Tree(ctx context.Context) (LayerTree, error) {
	return p.client.Menu(ctx, p.dataset)
}

// Get fetches ref and returns the body, blocking until it arrives.
// ref may be relative to the endpoint.
func (p *Probe) Get(ctx context.Context, ref string) (string, error) {
	return p.GetAsync(ctx, ref).Wait()
}

// GetAsync starts fetching ref and returns immediately.
func (p *Probe) GetAsync(ctx context.Context, ref string) *Pending {
	return p.client.Go(ctx, ref)
}

// MapURL returns the GetMap URL that renders sld.
func (p *Probe) MapURL(sld string) string {
	return p.request.URL(p.client.Endpoint(), sld)
}

// RenderMenu renders tree as nested HTML.
func RenderMenu(tree LayerTree) string {
	return menu.Render(tree)
}
