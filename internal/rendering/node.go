// Package rendering projects CV records into presentation trees using interchangeable templates.
package rendering

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// el builds an element with an optional class. Nil children are skipped,
// which lets callers pass the result of an omitted section directly.
func el(tag, class string, children ...*html.Node) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	if class != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
	}
	for _, c := range children {
		if c != nil {
			n.AppendChild(c)
		}
	}
	return n
}

// textEl builds an element holding only text, or nil when text is empty
func textEl(tag, class, text string) *html.Node {
	if text == "" {
		return nil
	}
	return el(tag, class, txt(text))
}

func txt(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func withAttr(n *html.Node, key, val string) *html.Node {
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
	return n
}

// link builds an anchor whose href has a scheme; the label is left as given
func link(class, rawURL, label string) *html.Node {
	a := el("a", class, txt(label))
	withAttr(a, "href", LinkHref(rawURL))
	withAttr(a, "target", "_blank")
	withAttr(a, "rel", "noopener noreferrer")
	return a
}

// entry marks n as one rendered list item
func entry(n *html.Node) *html.Node {
	return withAttr(n, "data-entry", "")
}

// attr returns the value of key on n, or "".
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// cloneTree deep-copies n so it can be attached under a new parent
func cloneTree(n *html.Node) *html.Node {
	out := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		out.Attr = make([]html.Attribute, len(n.Attr))
		copy(out.Attr, n.Attr)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out.AppendChild(cloneTree(c))
	}
	return out
}
