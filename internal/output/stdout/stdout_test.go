package stdout

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/crimson-sun/wmsprobe/internal/model"
)

func TestWriteTextArtifacts(t *testing.T) {
	var buf bytes.Buffer
	out := NewWriter(&buf)

	artifacts := []model.Artifact{
		{Kind: model.KindMenuHTML, Body: []byte(`<div style="margin-left: 0.5em;">No available datasets.</div>`)},
		{Kind: model.KindMapURL, Body: []byte("http://h/wms?REQUEST=GetMap")},
	}
	for _, a := range artifacts {
		if err := out.Write(context.Background(), a); err != nil {
			t.Fatalf("Write error: %v", err)
		}
	}

	want := `<div style="margin-left: 0.5em;">No available datasets.</div>` + "\n" +
		"http://h/wms?REQUEST=GetMap\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestWriteImageRaw(t *testing.T) {
	var buf bytes.Buffer
	out := NewWriter(&buf)

	png := []byte{0x89, 'P', 'N', 'G'}
	if err := out.Write(context.Background(), model.Artifact{Kind: model.KindImage, Body: png}); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), png) {
		t.Fatalf("expected raw image bytes, got %v", buf.Bytes())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestWriteError(t *testing.T) {
	out := NewWriter(failingWriter{})
	err := out.Write(context.Background(), model.Artifact{Kind: model.KindText, Body: []byte("x")})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestCloseIsNoop(t *testing.T) {
	if err := New().Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
