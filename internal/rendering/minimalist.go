// Package rendering projects CV records into presentation trees using interchangeable templates.
package rendering

import (
	"golang.org/x/net/html"

	"github.com/jonathan/cv-genie/internal/types"
)

type minimalist struct{}

// Minimalist is a serif single column with year-only dates and inline lists.
// The summary is shown without a heading.
func Minimalist() Renderer {
	return minimalist{}
}

func (minimalist) Info() Info {
	return Info{ID: TemplateMinimalist, Name: "Minimalist", Description: "Simple and elegant"}
}

func (minimalist) Stylesheet() string {
	return stylesheet(TemplateMinimalist)
}

const inlineSeparator = " · "

func (m minimalist) Project(r types.Record) *html.Node {
	personal := r.Object(types.SectionPersonalInfo)

	var header *html.Node
	if name, title := personal.Get(types.FieldFullName), personal.Get(types.FieldJobTitle); name != "" || title != "" {
		header = el("header", "header",
			textEl("h1", "name", name),
			textEl("p", "job-title", title),
		)
	}

	var contact *html.Node
	if items := contactItems(r.Object(types.SectionContactInfo), contactEmailFirst, "contact-item", "contact-link"); len(items) > 0 {
		contact = el("div", "contact", items...)
	}

	return el("div", "cv minimalist",
		header,
		contact,
		el("hr", "rule"),
		el("div", "body",
			m.summary(r),
			m.experience(r),
			m.education(r),
			m.skills(r),
			m.certifications(r),
			m.languages(r),
			m.projects(r),
		),
	)
}

func (minimalist) heading(text string) *html.Node {
	return el("h2", "section-title", txt(text))
}

func (m minimalist) summary(r types.Record) *html.Node {
	text := r.Text(types.SectionProfessionalSummary)
	if text == "" {
		return nil
	}
	return section(types.SectionProfessionalSummary, "section", nil, el("p", "summary", txt(text)))
}

func (m minimalist) experience(r types.Record) *html.Node {
	items := r.Items(types.SectionWorkExperience)
	if len(items) == 0 {
		return nil
	}
	entries := make([]*html.Node, 0, len(items))
	for _, it := range items {
		entries = append(entries, entry(el("div", "entry",
			el("div", "entry-head",
				textEl("h3", "position", it.Get(types.FieldPosition)),
				textEl("span", "dates", FormatRange(it.Get(types.FieldStartDate), it.Get(types.FieldEndDate), FormatYear)),
			),
			textEl("p", "company", it.Get(types.FieldCompany)),
			textEl("p", "description", it.Get(types.FieldDescription)),
		)))
	}
	return section(types.SectionWorkExperience, "section", m.heading("Experience"), entries...)
}

func (m minimalist) education(r types.Record) *html.Node {
	items := r.Items(types.SectionEducation)
	if len(items) == 0 {
		return nil
	}
	entries := make([]*html.Node, 0, len(items))
	for _, it := range items {
		entries = append(entries, entry(el("div", "entry",
			el("div", "entry-head",
				textEl("h3", "degree", it.Get(types.FieldDegree)),
				textEl("span", "dates", FormatRange(it.Get(types.FieldStartDate), it.Get(types.FieldEndDate), FormatYear)),
			),
			textEl("p", "institution", it.Get(types.FieldInstitution)),
			textEl("p", "note", it.Get(types.FieldDescription)),
		)))
	}
	return section(types.SectionEducation, "section", m.heading("Education"), entries...)
}

func (m minimalist) skills(r types.Record) *html.Node {
	items := r.Items(types.SectionSkills)
	if len(items) == 0 {
		return nil
	}
	spans := make([]*html.Node, 0, len(items))
	for _, it := range items {
		spans = append(spans, entry(el("span", "skill", txt(it.Get(types.FieldName)))))
	}
	return section(types.SectionSkills, "section", m.heading("Skills"),
		el("p", "inline-list", separated(spans, inlineSeparator)...))
}

func (m minimalist) certifications(r types.Record) *html.Node {
	items := r.Items(types.SectionCertifications)
	if len(items) == 0 {
		return nil
	}
	entries := make([]*html.Node, 0, len(items))
	for _, it := range items {
		detail := it.Get(types.FieldIssuingOrganization)
		if date := FormatYear(it.Get(types.FieldDate)); date != "" {
			if detail != "" {
				detail += ", "
			}
			detail += date
		}
		p := el("p", "cert", txt(it.Get(types.FieldName)))
		if detail != "" {
			p.AppendChild(txt(" "))
			p.AppendChild(el("span", "cert-detail", txt("("+detail+")")))
		}
		entries = append(entries, entry(p))
	}
	return section(types.SectionCertifications, "section", m.heading("Certifications"), entries...)
}

func (m minimalist) languages(r types.Record) *html.Node {
	items := r.Items(types.SectionLanguages)
	if len(items) == 0 {
		return nil
	}
	spans := make([]*html.Node, 0, len(items))
	for _, it := range items {
		label := it.Get(types.FieldName)
		if prof := it.Get(types.FieldProficiency); prof != "" {
			label += " (" + prof + ")"
		}
		spans = append(spans, entry(el("span", "language", txt(label))))
	}
	return section(types.SectionLanguages, "section", m.heading("Languages"),
		el("p", "inline-list", separated(spans, inlineSeparator)...))
}

func (m minimalist) projects(r types.Record) *html.Node {
	items := r.Items(types.SectionProjects)
	if len(items) == 0 {
		return nil
	}
	entries := make([]*html.Node, 0, len(items))
	for _, it := range items {
		title := el("h3", "project-name", txt(it.Get(types.FieldName)))
		if u := it.Get(types.FieldURL); u != "" {
			title.AppendChild(txt(" "))
			title.AppendChild(link("project-link", u, "[Link]"))
		}
		entries = append(entries, entry(el("div", "entry",
			title,
			textEl("p", "description", it.Get(types.FieldDescription)),
		)))
	}
	return section(types.SectionProjects, "section", m.heading("Projects"), entries...)
}
