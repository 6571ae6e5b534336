package wms

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestGetJSON_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"label":"server","id":"x"}`))
	}))
	defer srv.Close()

	c := New(srv.URL + "/wms")
	var dest struct {
		Label string `json:"label"`
		ID    string `json:"id"`
	}
	err := c.GetJSON(context.Background(), "/info", &dest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dest.Label != "server" || dest.ID != "x" {
		t.Fatalf("unexpected result: %+v", dest)
	}
}

func TestGetJSON_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.GetJSON(context.Background(), "/", &struct{}{})
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("decode failure should not be an *APIError: %v", err)
	}
}

func TestMenu_Request(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"label":"ncWMS","children":[{"label":"Ocean","children":[]}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL + "/ncWMS2/wms")
	tree, err := c.Menu(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/ncWMS2/wms" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	// url.Values.Encode sorts keys alphabetically
	if gotQuery != "ITEM=menu&REQUEST=GetMetadata" {
		t.Fatalf("unexpected query: %q", gotQuery)
	}
	if tree.Label != "ncWMS" || len(tree.Children) != 1 || tree.Children[0].Label != "Ocean" {
		t.Fatalf("unexpected tree: %+v", tree)
	}
}

func TestMenuRef_Dataset(t *testing.T) {
	got := MenuRef("ocean")
	if got != "?DATASET=ocean&ITEM=menu&REQUEST=GetMetadata" {
		t.Fatalf("unexpected ref: %q", got)
	}
}

func TestGetText_Body(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<StyledLayerDescriptor/>"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	got, err := c.GetText(context.Background(), "/samples/a.xml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "<StyledLayerDescriptor/>" {
		t.Fatalf("unexpected body: %q", got)
	}
}

func TestGetBytes_ContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte{0x89, 'P', 'N', 'G'})
	}))
	defer srv.Close()

	c := New(srv.URL)
	body, ct, err := c.GetBytes(context.Background(), "/wms")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ct != "image/png" || len(body) != 4 {
		t.Fatalf("unexpected response: %q %v", ct, body)
	}
}

func TestGet_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(400)
		w.Write([]byte(`<ServiceExceptionReport/>`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.GetText(context.Background(), "/bad")
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != 400 {
		t.Fatalf("expected status 400, got %d", apiErr.StatusCode)
	}
	if apiErr.Body != `<ServiceExceptionReport/>` {
		t.Fatalf("unexpected body: %q", apiErr.Body)
	}
}

func TestGet_APIErrorTruncatesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
		w.Write([]byte(strings.Repeat("x", 2000)))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.GetText(context.Background(), "/")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if len(apiErr.Body) != 512 {
		t.Fatalf("expected 512-byte body, got %d", len(apiErr.Body))
	}
}

func TestGet_NoRetryOn5xx(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(503)
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.GetText(context.Background(), "/"); err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected 1 call, got %d", calls.Load())
	}
}

func TestGet_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(srv.URL)
	_, err := c.GetText(ctx, "/")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestWithTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := New(srv.URL, WithTimeout(50*time.Millisecond))
	if _, err := c.GetText(context.Background(), "/"); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestWithTimeout_KeepsCallerClient(t *testing.T) {
	shared := &http.Client{Timeout: time.Minute}
	c := New("http://maps.example.org/wms", WithHTTPClient(shared), WithTimeout(time.Second))

	if shared.Timeout != time.Minute {
		t.Fatalf("shared client timeout changed to %v", shared.Timeout)
	}
	if c.httpClient == shared {
		t.Fatal("client still points at the shared http.Client")
	}
	if c.httpClient.Timeout != time.Second {
		t.Fatalf("client timeout = %v, want 1s", c.httpClient.Timeout)
	}
}

func TestUserAgent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	c := New(srv.URL, WithUserAgent("wmsprobe/test"))
	if _, err := c.GetText(context.Background(), "/"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "wmsprobe/test" {
		t.Fatalf("unexpected User-Agent: %q", got)
	}
}

func TestResolve(t *testing.T) {
	c := New("http://maps.example.org/ncWMS2/wms")
	tests := []struct {
		ref  string
		want string
	}{
		{"?REQUEST=GetCapabilities", "http://maps.example.org/ncWMS2/wms?REQUEST=GetCapabilities"},
		{"sld/sample.xml", "http://maps.example.org/ncWMS2/sld/sample.xml"},
		{"/other", "http://maps.example.org/other"},
		{"https://elsewhere.example.org/x", "https://elsewhere.example.org/x"},
	}
	for _, tt := range tests {
		got, err := c.Resolve(tt.ref)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", tt.ref, err)
		}
		if got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}
