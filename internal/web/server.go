// Package web serves the demo page: the layer menu, an SLD input and the
// map image it produces.
package web

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"golang.org/x/sync/errgroup"

	"github.com/crimson-sun/wmsprobe/internal/menu"
	"github.com/crimson-sun/wmsprobe/internal/page"
	"github.com/crimson-sun/wmsprobe/internal/wms"
)

const shutdownTimeout = 5 * time.Second

// Upstream is the map server the page talks to.
type Upstream interface {
	menu.Source
	Endpoint() string
}

// Options configures a Server.
type Options struct {
	Dataset    string         // menu filter; empty = all datasets
	Request    wms.MapRequest // GetMap template
	SamplesDir string
}

// Server is the demo page handler.
type Server struct {
	upstream Upstream
	opts     Options
	samples  sampleFiles
	mux      *http.ServeMux
}

// New creates a Server. A zero Options.Request uses the default template.
func New(upstream Upstream, opts Options) *Server {
	if opts.Request == (wms.MapRequest{}) {
		opts.Request = wms.DefaultMapRequest()
	}
	s := &Server{
		upstream: upstream,
		opts:     opts,
		samples:  sampleFiles{fsys: dirFS(opts.SamplesDir)},
		mux:      http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /menu", s.handleMenu)
	s.mux.HandleFunc("GET /map", s.handleMap)
	s.mux.HandleFunc("GET /samples/{name}", s.handleSample)
	return s
}

func dirFS(dir string) fs.FS {
	if dir == "" {
		dir = "."
	}
	return os.DirFS(dir)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleIndex renders the page. ?sample= fills the SLD input from a sample
// file; ?sld= sets it directly and points the map image at the result.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	p := page.New()
	img := &page.Image{}
	p.Map = img

	loadMap := false
	switch {
	case q.Get("sample") != "":
		<-page.NewSampleLoader(p, s.samples).Load(ctx, q.Get("sample"))
		loadMap = p.SLD.Value() != ""
	case q.Has("sld"):
		p.SLD.SetValue(q.Get("sld"))
		loadMap = true
	}
	if loadMap {
		l := page.NewMapLoader(p, s.upstream.Endpoint())
		l.Request = s.opts.Request
		l.Load()
	}

	data := indexData{
		Endpoint: s.upstream.Endpoint(),
		SLD:      p.SLD.Value(),
		MapSrc:   img.Src(),
		Samples:  s.samples.list(),
	}
	if tree, err := s.upstream.Menu(ctx, s.opts.Dataset); err != nil {
		slog.Warn("menu fetch failed", "endpoint", s.upstream.Endpoint(), "error", err)
		data.MenuErr = err.Error()
	} else {
		data.Menu = menu.Component(tree)
	}

	templ.Handler(indexView(data)).ServeHTTP(w, r)
}

func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	tree, err := s.upstream.Menu(r.Context(), s.opts.Dataset)
	if err != nil {
		slog.Warn("menu fetch failed", "endpoint", s.upstream.Endpoint(), "error", err)
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	templ.Handler(menu.Component(tree)).ServeHTTP(w, r)
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	target := s.opts.Request.URL(s.upstream.Endpoint(), r.URL.Query().Get("sld"))
	http.Redirect(w, r, target, http.StatusFound)
}

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	body, err := s.samples.read(r.PathValue("name"))
	if err != nil {
		slog.Debug("sample not served", "name", r.PathValue("name"), "error", err)
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Write([]byte(body))
}

// Run listens on addr and serves h until ctx is cancelled.
func Run(ctx context.Context, addr string, h http.Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("web: %w", err)
	}
	return Serve(ctx, ln, h)
}

// Serve serves h on ln until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, ln net.Listener, h http.Handler) error {
	srv := &http.Server{Handler: h, ReadHeaderTimeout: 10 * time.Second}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("serving demo page", "addr", ln.Addr().String())
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("web: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
