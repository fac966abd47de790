// Package rendering projects CV records into presentation trees using interchangeable templates.
package rendering

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Markdown flattens a presentation tree into Markdown for terminal preview.
// Headings keep their level, list items become "- " lines and anchors become
// inline links. Loose inline elements inside a container (the contact line)
// are joined with " · ".
func Markdown(n *html.Node) string {
	var b strings.Builder
	writeBlock(&b, n)
	return strings.TrimSpace(b.String()) + "\n"
}

func writeBlock(b *strings.Builder, n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Head, atom.Style, atom.Script:
			return
		case atom.H1:
			writeLine(b, "# ", n)
			return
		case atom.H2:
			writeLine(b, "## ", n)
			return
		case atom.H3:
			writeLine(b, "### ", n)
			return
		case atom.P:
			writeLine(b, "", n)
			return
		case atom.Hr:
			b.WriteString("---\n\n")
			return
		case atom.Ul:
			for li := n.FirstChild; li != nil; li = li.NextSibling {
				if text := strings.TrimSpace(inline(li)); text != "" {
					b.WriteString("- " + text + "\n")
				}
			}
			b.WriteString("\n")
			return
		}
	}

	var run []string
	flush := func() {
		if len(run) > 0 {
			b.WriteString(strings.Join(run, " · ") + "\n\n")
			run = run[:0]
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isBlock(c) {
			flush()
			writeBlock(b, c)
			continue
		}
		if text := strings.TrimSpace(inline(c)); text != "" {
			run = append(run, text)
		}
	}
	flush()
}

func writeLine(b *strings.Builder, prefix string, n *html.Node) {
	text := strings.TrimSpace(inline(n))
	if text == "" {
		return
	}
	b.WriteString(prefix + text + "\n\n")
}

func inline(n *html.Node) string {
	switch n.Type {
	case html.TextNode:
		return n.Data
	case html.ElementNode:
		var b strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			b.WriteString(inline(c))
		}
		if n.DataAtom == atom.A {
			return "[" + b.String() + "](" + attr(n, "href") + ")"
		}
		return b.String()
	}
	return ""
}

func isBlock(n *html.Node) bool {
	if n.Type == html.DocumentNode {
		return true
	}
	if n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.Html, atom.Head, atom.Body, atom.Div, atom.Section, atom.Header,
		atom.H1, atom.H2, atom.H3, atom.P, atom.Ul, atom.Hr, atom.Style:
		return true
	}
	return false
}
