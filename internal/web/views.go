package web

import (
	"context"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"github.com/crimson-sun/wmsprobe/internal/page"
)

// indexData is everything the demo page shows.
type indexData struct {
	Endpoint string
	Menu     templ.Component // nil when the menu could not be fetched
	MenuErr  string
	SLD      string
	MapSrc   string
	Samples  []string
}

// stickyWriter remembers the first write error and skips later writes.
type stickyWriter struct {
	w   io.Writer
	err error
}

func (s *stickyWriter) str(v string) {
	if s.err == nil {
		_, s.err = io.WriteString(s.w, v)
	}
}

// text writes v HTML-escaped.
func (s *stickyWriter) text(v string) {
	s.str(templ.EscapeString(v))
}

func (s *stickyWriter) component(ctx context.Context, c templ.Component) {
	if s.err == nil {
		s.err = c.Render(ctx, s.w)
	}
}

func indexView(d indexData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		sw := &stickyWriter{w: w}
		sw.str(`<!DOCTYPE html><html><head><meta charset="utf-8"><title>wmsprobe</title></head><body>`)
		sw.str(`<h1>wmsprobe</h1><p>Server: <code>`)
		sw.text(d.Endpoint)
		sw.str(`</code></p>`)

		sw.str(`<h2>Layers</h2><div id="` + page.MenuBlockID + `">`)
		if d.Menu != nil {
			sw.component(ctx, d.Menu)
		} else {
			sw.str(`<p class="error">`)
			sw.text(d.MenuErr)
			sw.str(`</p>`)
		}
		sw.str(`</div>`)

		if len(d.Samples) > 0 {
			sw.str(`<h2>Samples</h2><ul>`)
			for _, name := range d.Samples {
				sw.str(`<li><a href="/?sample=`)
				sw.text(url.QueryEscape(name))
				sw.str(`">`)
				sw.text(name)
				sw.str(`</a></li>`)
			}
			sw.str(`</ul>`)
		}

		sw.str(`<h2>SLD</h2><form action="/" method="get">`)
		sw.str(`<textarea id="` + page.SLDInputID + `" name="sld" rows="20" cols="100">`)
		sw.text(d.SLD)
		sw.str(`</textarea><br/><button type="submit">Load map</button></form>`)

		sw.str(`<h2>Map</h2><img id="` + page.MapImageID + `" alt="map"`)
		if d.MapSrc != "" {
			sw.str(` src="`)
			sw.text(d.MapSrc)
			sw.str(`"`)
		}
		sw.str(`/></body></html>`)
		return sw.err
	})
}
