package webhook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/crimson-sun/wmsprobe/internal/model"
)

const defaultTimeout = 10 * time.Second

// Header names describing the posted artifact.
const (
	HeaderKind   = "X-Wmsprobe-Kind"
	HeaderSource = "X-Wmsprobe-Source"
)

// Option configures a webhook Output.
type Option func(*Output)

// WithHeaders sets custom HTTP headers sent with every POST.
func WithHeaders(h map[string]string) Option {
	return func(o *Output) { o.headers = h }
}

// WithTimeout sets the HTTP client timeout. Default: 10s.
func WithTimeout(d time.Duration) Option {
	return func(o *Output) { o.client.Timeout = d }
}

// Output POSTs each artifact body to an HTTP endpoint, one request per
// artifact. Failures are returned, never retried.
type Output struct {
	client  *http.Client
	url     string
	headers map[string]string
}

// New creates a webhook output targeting the given URL.
func New(url string, opts ...Option) *Output {
	o := &Output{
		client: &http.Client{Timeout: defaultTimeout},
		url:    url,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Output) Write(ctx context.Context, a model.Artifact) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.url, bytes.NewReader(a.Body))
	if err != nil {
		return fmt.Errorf("webhook: %w", err)
	}
	req.Header.Set("Content-Type", contentType(a))
	req.Header.Set(HeaderKind, string(a.Kind))
	if a.Source != "" {
		req.Header.Set(HeaderSource, a.Source)
	}
	for k, v := range o.headers {
		req.Header.Set(k, v)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: %w", err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook: HTTP %d", resp.StatusCode)
	}
	return nil
}

// Close is a no-op; nothing is buffered.
func (o *Output) Close() error {
	return nil
}

func contentType(a model.Artifact) string {
	switch {
	case a.ContentType != "":
		return a.ContentType
	case a.Kind == model.KindMenuHTML:
		return "text/html; charset=utf-8"
	case a.IsText():
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
