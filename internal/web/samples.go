package web

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/crimson-sun/wmsprobe/internal/wms"
)

// sampleFiles serves SLD documents from a directory.
type sampleFiles struct {
	fsys fs.FS
}

// clean maps a sample reference such as "/samples/a.xml" or "a.xml" to a
// name inside the directory.
func (s sampleFiles) clean(ref string) (string, error) {
	name := strings.TrimPrefix(path.Clean("/"+ref), "/")
	name = strings.TrimPrefix(name, "samples/")
	if !fs.ValidPath(name) || name == "." {
		return "", fmt.Errorf("web: invalid sample name %q", ref)
	}
	return name, nil
}

func (s sampleFiles) read(ref string) (string, error) {
	name, err := s.clean(ref)
	if err != nil {
		return "", err
	}
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return "", fmt.Errorf("web: sample %s: %w", name, err)
	}
	return string(data), nil
}

// Go implements page.Fetcher.
func (s sampleFiles) Go(_ context.Context, ref string) *wms.Pending {
	return wms.Async(func() (string, error) { return s.read(ref) })
}

// list returns the sample names, sorted. A missing directory yields none.
func (s sampleFiles) list() []string {
	var names []string
	for _, pattern := range []string{"*.xml", "*.sld"} {
		matches, err := fs.Glob(s.fsys, pattern)
		if err != nil {
			continue
		}
		names = append(names, matches...)
	}
	slices.Sort(names)
	return names
}
