// Package rendering projects CV records into presentation trees using interchangeable templates.
package rendering

import (
	"golang.org/x/net/html"

	"github.com/jonathan/cv-genie/internal/types"
)

// section wraps content in a <section> tagged with the section's wire name.
// heading may be nil for templates that show some sections untitled.
func section(id types.SectionID, class string, heading *html.Node, body ...*html.Node) *html.Node {
	s := el("section", class, append([]*html.Node{heading}, body...)...)
	return withAttr(s, "data-section", id.String())
}

// contactOrder lists contact fields in the order a template shows them
type contactOrder []string

var (
	contactPhoneFirst = contactOrder{types.FieldPhone, types.FieldEmail, types.FieldAddress, types.FieldLinkedIn, types.FieldGitHub}
	contactEmailFirst = contactOrder{types.FieldEmail, types.FieldPhone, types.FieldAddress, types.FieldLinkedIn, types.FieldGitHub}
)

// contactItems renders the non-empty contact fields. Profile URLs become
// links labelled "LinkedIn" and "GitHub".
func contactItems(contact types.Object, order contactOrder, itemClass, linkClass string) []*html.Node {
	var out []*html.Node
	for _, field := range order {
		val := contact.Get(field)
		if val == "" {
			continue
		}
		switch field {
		case types.FieldLinkedIn:
			out = append(out, withAttr(link(linkClass, val, "LinkedIn"), "data-contact", field))
		case types.FieldGitHub:
			out = append(out, withAttr(link(linkClass, val, "GitHub"), "data-contact", field))
		default:
			out = append(out, withAttr(el("span", itemClass, txt(val)), "data-contact", field))
		}
	}
	return out
}

// skillLabel is "Go" or "Go (Expert)"
func skillLabel(item types.Fields) string {
	name, level := item.Get(types.FieldName), item.Get(types.FieldLevel)
	if level == "" {
		return name
	}
	return name + " (" + level + ")"
}

// nameWithDetail is "name - detail", or whichever side is non-empty
func nameWithDetail(name, detail string) string {
	switch {
	case detail == "":
		return name
	case name == "":
		return detail
	default:
		return name + " - " + detail
	}
}

// separated interleaves nodes with separator text
func separated(nodes []*html.Node, sep string) []*html.Node {
	out := make([]*html.Node, 0, len(nodes)*2)
	for i, n := range nodes {
		if i > 0 {
			out = append(out, txt(sep))
		}
		out = append(out, n)
	}
	return out
}
