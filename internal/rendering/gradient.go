// Package rendering projects CV records into presentation trees using interchangeable templates.
package rendering

import (
	"golang.org/x/net/html"

	"github.com/jonathan/cv-genie/internal/types"
)

type gradient struct{}

// Gradient is a single-column layout with a tinted background; the short
// sections (skills, certifications, languages, projects) share a grid.
func Gradient() Renderer {
	return gradient{}
}

func (gradient) Info() Info {
	return Info{ID: TemplateGradient, Name: "Gradient", Description: "Modern with subtle gradients"}
}

func (gradient) Stylesheet() string {
	return stylesheet(TemplateGradient)
}

func (g gradient) Project(r types.Record) *html.Node {
	personal := r.Object(types.SectionPersonalInfo)

	var header *html.Node
	if name, title := personal.Get(types.FieldFullName), personal.Get(types.FieldJobTitle); name != "" || title != "" {
		header = el("header", "header",
			textEl("h1", "name", name),
			textEl("p", "job-title", title),
		)
	}

	var contact *html.Node
	if items := contactItems(r.Object(types.SectionContactInfo), contactPhoneFirst, "contact-item", "contact-link"); len(items) > 0 {
		contact = el("div", "contact", items...)
	}

	var grid *html.Node
	if cells := nonNil(g.skills(r), g.certifications(r), g.languages(r), g.projects(r)); len(cells) > 0 {
		grid = el("div", "grid", cells...)
	}

	return el("div", "cv gradient",
		header,
		contact,
		el("div", "body",
			g.summary(r),
			g.experience(r),
			g.education(r),
			grid,
		),
	)
}

func (gradient) heading(text string) *html.Node {
	return el("h2", "section-title", txt(text))
}

func (gradient) minorHeading(text string) *html.Node {
	return el("h2", "section-title minor", txt(text))
}

func (g gradient) summary(r types.Record) *html.Node {
	text := r.Text(types.SectionProfessionalSummary)
	if text == "" {
		return nil
	}
	return section(types.SectionProfessionalSummary, "section", g.heading("Professional Summary"),
		el("p", "summary", txt(text)))
}

func (g gradient) experience(r types.Record) *html.Node {
	items := r.Items(types.SectionWorkExperience)
	if len(items) == 0 {
		return nil
	}
	entries := make([]*html.Node, 0, len(items))
	for _, it := range items {
		title := el("h3", "position", txt(it.Get(types.FieldPosition)))
		if company := it.Get(types.FieldCompany); company != "" {
			title.AppendChild(txt(" "))
			title.AppendChild(el("span", "company", txt("at "+company)))
		}
		entries = append(entries, entry(el("div", "entry accent",
			title,
			textEl("p", "dates", FormatRange(it.Get(types.FieldStartDate), it.Get(types.FieldEndDate), FormatMonthYear)),
			textEl("p", "description", it.Get(types.FieldDescription)),
		)))
	}
	return section(types.SectionWorkExperience, "section", g.heading("Work Experience"), entries...)
}

func (g gradient) education(r types.Record) *html.Node {
	items := r.Items(types.SectionEducation)
	if len(items) == 0 {
		return nil
	}
	entries := make([]*html.Node, 0, len(items))
	for _, it := range items {
		entries = append(entries, entry(el("div", "entry accent",
			textEl("h3", "degree", it.Get(types.FieldDegree)),
			textEl("p", "institution", it.Get(types.FieldInstitution)),
			textEl("p", "dates", FormatRange(it.Get(types.FieldStartDate), it.Get(types.FieldEndDate), FormatMonthYear)),
			textEl("p", "note", it.Get(types.FieldDescription)),
		)))
	}
	return section(types.SectionEducation, "section", g.heading("Education"), entries...)
}

func (g gradient) skills(r types.Record) *html.Node {
	items := r.Items(types.SectionSkills)
	if len(items) == 0 {
		return nil
	}
	chips := el("div", "chips")
	for _, it := range items {
		chips.AppendChild(entry(el("span", "chip", txt(skillLabel(it)))))
	}
	return section(types.SectionSkills, "section", g.minorHeading("Skills"), chips)
}

func (g gradient) certifications(r types.Record) *html.Node {
	items := r.Items(types.SectionCertifications)
	if len(items) == 0 {
		return nil
	}
	entries := make([]*html.Node, 0, len(items))
	for _, it := range items {
		entries = append(entries, entry(el("div", "entry",
			textEl("p", "cert-name", it.Get(types.FieldName)),
			textEl("p", "cert-detail", nameWithDetail(it.Get(types.FieldIssuingOrganization), FormatMonthYear(it.Get(types.FieldDate)))),
		)))
	}
	return section(types.SectionCertifications, "section", g.minorHeading("Certifications"), entries...)
}

func (g gradient) languages(r types.Record) *html.Node {
	items := r.Items(types.SectionLanguages)
	if len(items) == 0 {
		return nil
	}
	list := el("ul", "languages")
	for _, it := range items {
		li := el("li", "", txt(it.Get(types.FieldName)))
		if prof := it.Get(types.FieldProficiency); prof != "" {
			li.AppendChild(txt(" - "))
			li.AppendChild(el("span", "proficiency", txt(prof)))
		}
		list.AppendChild(entry(li))
	}
	return section(types.SectionLanguages, "section", g.minorHeading("Languages"), list)
}

func (g gradient) projects(r types.Record) *html.Node {
	items := r.Items(types.SectionProjects)
	if len(items) == 0 {
		return nil
	}
	entries := make([]*html.Node, 0, len(items))
	for _, it := range items {
		title := el("h3", "project-name", txt(it.Get(types.FieldName)))
		if u := it.Get(types.FieldURL); u != "" {
			title.AppendChild(txt(" "))
			title.AppendChild(link("project-link", u, "(Link)"))
		}
		entries = append(entries, entry(el("div", "entry",
			title,
			textEl("p", "description", it.Get(types.FieldDescription)),
		)))
	}
	return section(types.SectionProjects, "section", g.minorHeading("Projects"), entries...)
}

func nonNil(nodes ...*html.Node) []*html.Node {
	out := make([]*html.Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}
