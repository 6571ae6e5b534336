package wmsprobe

import (
	"net/http"
	"time"

	"github.com/crimson-sun/wmsprobe/internal/wms"
)

type options struct {
	timeout    time.Duration
	httpClient *http.Client
	dataset    string
	request    wms.MapRequest
}

// Option configures a Probe.
type Option func(*options)

// WithTimeout sets the per-request timeout. Default: 30s.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithHTTPClient sets the HTTP client used for every request.
// It takes precedence over WithTimeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithDataset restricts the menu to a single dataset.
func WithDataset(id string) Option {
	return func(o *options) {
		o.dataset = id
	}
}

// WithMapSize sets the GetMap image size in pixels. Default: 1024x512.
func WithMapSize(width, height int) Option {
	return func(o *options) {
		o.request.Width = width
		o.request.Height = height
	}
}

// WithVersion sets the WMS version of GetMap requests: "1.1.1" or "1.3.0".
// Default: "1.3.0".
func WithVersion(v string) Option {
	return func(o *options) {
		o.request.Version = v
		if v == "1.1.1" && o.request.CRS == wms.DefaultCRS {
			o.request.CRS = "EPSG:4326"
		}
	}
}

func defaultOptions() options {
	return options{
		timeout: 30 * time.Second,
		request: wms.DefaultMapRequest(),
	}
}
