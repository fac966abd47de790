// Package rendering projects CV records into presentation trees using interchangeable templates.
package rendering

import (
	"bytes"
	"io"

	"golang.org/x/net/html"

	"github.com/jonathan/cv-genie/internal/types"
)

// WriteHTML serializes a presentation tree.
func WriteHTML(w io.Writer, n *html.Node) error {
	if n == nil {
		return &RenderError{Message: "nothing to render"}
	}
	if err := html.Render(w, n); err != nil {
		return &RenderError{Message: "failed to write html", Cause: err}
	}
	return nil
}

// Fragment renders the preview region for r as an HTML fragment.
func (g *Registry) Fragment(r types.Record, id string) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, g.Render(r, id)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Document wraps a rendered region in a standalone page carrying the
// stylesheet of the template named by the region's data-template attribute.
// The region itself is copied, never re-parented.
func (g *Registry) Document(region *html.Node, title string) *html.Node {
	renderer := g.Resolve(attr(region, "data-template"))

	style := el("style", "", txt(renderer.Stylesheet()))
	charset := withAttr(el("meta", ""), "charset", "utf-8")
	viewport := withAttr(withAttr(el("meta", ""), "name", "viewport"), "content", "width=device-width, initial-scale=1")

	if title == "" {
		title = "CV"
	}
	root := el("html", "",
		el("head", "", charset, viewport, el("title", "", txt(title)), style),
		el("body", "", cloneTree(region)),
	)
	withAttr(root, "lang", "en")

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(root)
	return doc
}

// WriteDocument renders r with the template named id as a standalone page.
func (g *Registry) WriteDocument(w io.Writer, r types.Record, id string) error {
	title := r.FullName()
	if title != "" {
		title += " - CV"
	}
	return WriteHTML(w, g.Document(g.Render(r, id), title))
}

