package output

import (
	"bytes"
	"testing"

	"github.com/crimson-sun/wmsprobe/internal/model"
)

func TestFormat_TextGetsNewline(t *testing.T) {
	got := Format(model.Artifact{Kind: model.KindMapURL, Body: []byte("http://h/wms?REQUEST=GetMap")})
	if string(got) != "http://h/wms?REQUEST=GetMap\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestFormat_CollapsesTrailingNewlines(t *testing.T) {
	got := Format(model.Artifact{Kind: model.KindText, Body: []byte("body\n\n\n")})
	if string(got) != "body\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestFormat_EmptyText(t *testing.T) {
	got := Format(model.Artifact{Kind: model.KindText})
	if string(got) != "\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestFormat_ImageUntouched(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	got := Format(model.Artifact{Kind: model.KindImage, Body: png})
	if !bytes.Equal(got, png) {
		t.Fatalf("image bytes modified: %v", got)
	}
}

func TestFormat_DoesNotAliasBody(t *testing.T) {
	body := []byte("abc")
	got := Format(model.Artifact{Kind: model.KindText, Body: body})
	got[0] = 'X'
	if string(body) != "abc" {
		t.Fatalf("Format mutated the artifact body: %q", body)
	}
}
