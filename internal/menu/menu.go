// Package menu renders a WMS layer menu as nested HTML.
package menu

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/crimson-sun/wmsprobe/internal/model"
)

// Indent opens one level of visual indentation.
const Indent = `<div style="margin-left: 0.5em;">`

// NoDatasets is rendered when the server reports no datasets.
const NoDatasets = Indent + "No available datasets.</div>"

// Source provides the layer menu document.
type Source interface {
	Menu(ctx context.Context, dataset string) (model.LayerTree, error)
}

// Render returns the HTML summary of tree. Datasets are shown in bold, each
// followed by an indented block of its variables; a variable's
// sub-variables get one further level. Deeper levels are not shown.
func Render(tree model.LayerTree) string {
	if !tree.HasChildren() {
		return NoDatasets
	}

	var b strings.Builder
	b.WriteString(Indent)
	for _, ds := range tree.Children {
		b.WriteString("<b>")
		b.WriteString(templ.EscapeString(ds.Label))
		b.WriteString("</b><br/>")
		b.WriteString(Indent)
		for _, v := range ds.Children {
			writeEntry(&b, v)
			if !v.HasChildren() {
				continue
			}
			b.WriteString(Indent)
			for _, sub := range v.Children {
				writeEntry(&b, sub)
			}
			b.WriteString("</div>")
		}
		b.WriteString("</div>")
	}
	b.WriteString("</div>")
	return b.String()
}

// writeEntry writes "label (id)<br/>".
func writeEntry(b *strings.Builder, n model.LayerNode) {
	b.WriteString(templ.EscapeString(n.Label))
	b.WriteString(" (")
	b.WriteString(templ.EscapeString(n.ID))
	b.WriteString(")<br/>")
}

// Component wraps Render for embedding in templ pages.
func Component(tree model.LayerTree) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, Render(tree))
		return err
	})
}

// Fetch retrieves the menu from src and renders it. Fetch and decode
// failures are returned, never rendered.
func Fetch(ctx context.Context, src Source, dataset string) (string, error) {
	tree, err := src.Menu(ctx, dataset)
	if err != nil {
		return "", fmt.Errorf("menu: %w", err)
	}
	return Render(tree), nil
}
