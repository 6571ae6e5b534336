package page

import (
	"context"
	"log/slog"

	"github.com/crimson-sun/wmsprobe/internal/wms"
)

// MapLoader points the map image at a GetMap request built from the SLD
// input.
type MapLoader struct {
	Input    TextField
	Target   ImageTarget
	Endpoint string
	Request  wms.MapRequest
}

// NewMapLoader wires a MapLoader to p using the default GetMap template.
func NewMapLoader(p *Page, endpoint string) *MapLoader {
	return &MapLoader{
		Input:    p.SLD,
		Target:   p.Map,
		Endpoint: endpoint,
		Request:  wms.DefaultMapRequest(),
	}
}

// URL returns the GetMap URL for the current input value.
func (l *MapLoader) URL() string {
	return l.Request.URL(l.Endpoint, l.Input.Value())
}

// Load assigns the GetMap URL for the current input value to the target.
func (l *MapLoader) Load() {
	src := l.URL()
	slog.Debug("loading map image", "bytes", len(src))
	l.Target.SetSrc(src)
}

// Fetcher starts background GETs.
type Fetcher interface {
	Go(ctx context.Context, ref string) *wms.Pending
}

// SampleLoader fills the SLD input with the contents of a sample file.
type SampleLoader struct {
	Fetcher Fetcher
	Input   TextField
}

// NewSampleLoader wires a SampleLoader to p.
func NewSampleLoader(p *Page, f Fetcher) *SampleLoader {
	return &SampleLoader{Fetcher: f, Input: p.SLD}
}

// Load fetches ref in the background and stores the body in the input. A
// failed request leaves the input unchanged. The returned channel is closed
// once the input has been updated or the request has failed.
func (l *SampleLoader) Load(ctx context.Context, ref string) <-chan struct{} {
	return l.Start(ctx, ref).Done()
}

// Start is Load for callers that need the outcome. The returned Pending
// finishes after the input has been updated, and carries the fetch error
// when there is one.
func (l *SampleLoader) Start(ctx context.Context, ref string) *wms.Pending {
	pending := l.Fetcher.Go(ctx, ref)
	return wms.Async(func() (string, error) {
		body, err := pending.Wait()
		if err != nil {
			slog.Warn("sample load failed", "ref", ref, "error", err)
			return "", err
		}
		l.Input.SetValue(body)
		return body, nil
	})
}
