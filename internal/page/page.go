// Package page holds the element references the loaders read and write.
// Loaders receive them explicitly instead of looking them up by id.
package page

import "sync"

// Element ids of the demo page.
const (
	SLDInputID  = "sld"
	MapImageID  = "map"
	MenuBlockID = "menu"
)

// TextField is an input whose value can be read and replaced.
type TextField interface {
	Value() string
	SetValue(v string)
}

// ImageTarget receives the URL an image should load from.
type ImageTarget interface {
	SetSrc(src string)
}

// ImageFunc adapts a function to ImageTarget.
type ImageFunc func(src string)

// SetSrc calls f(src).
func (f ImageFunc) SetSrc(src string) { f(src) }

// TextArea is a TextField safe for concurrent use.
type TextArea struct {
	mu    sync.RWMutex
	value string
}

// NewTextArea returns a TextArea holding v.
func NewTextArea(v string) *TextArea {
	return &TextArea{value: v}
}

func (t *TextArea) Value() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.value
}

func (t *TextArea) SetValue(v string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.value = v
}

// Image is an ImageTarget that remembers its source.
type Image struct {
	mu  sync.RWMutex
	src string
}

func (i *Image) SetSrc(src string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.src = src
}

// Src returns the last assigned source.
func (i *Image) Src() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.src
}

// Page bundles the SLD input and the map image.
type Page struct {
	SLD TextField
	Map ImageTarget
}

// New returns a Page backed by an empty TextArea and Image.
func New() *Page {
	return &Page{SLD: NewTextArea(""), Map: &Image{}}
}
