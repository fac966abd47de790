// Package rendering projects CV records into presentation trees using interchangeable templates.
package rendering

import (
	"golang.org/x/net/html"

	"github.com/jonathan/cv-genie/internal/types"
)

type professional struct{}

// Professional is a two-column layout: summary, experience and projects on
// the left; education, skills, certifications and languages on the right.
func Professional() Renderer {
	return professional{}
}

func (professional) Info() Info {
	return Info{ID: TemplateProfessional, Name: "Professional", Description: "Clean and ATS-friendly"}
}

func (professional) Stylesheet() string {
	return stylesheet(TemplateProfessional)
}

func (p professional) Project(r types.Record) *html.Node {
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

	return el("div", "cv professional",
		header,
		contact,
		el("div", "columns",
			el("div", "main",
				p.summary(r),
				p.experience(r),
				p.projects(r),
			),
			el("div", "side",
				p.education(r),
				p.skills(r),
				p.certifications(r),
				p.languages(r),
			),
		),
	)
}

func (professional) heading(text string) *html.Node {
	return el("h2", "section-title", txt(text))
}

func (p professional) summary(r types.Record) *html.Node {
	text := r.Text(types.SectionProfessionalSummary)
	if text == "" {
		return nil
	}
	return section(types.SectionProfessionalSummary, "section", p.heading("Summary"),
		el("p", "summary", txt(text)))
}

func (p professional) experience(r types.Record) *html.Node {
	items := r.Items(types.SectionWorkExperience)
	if len(items) == 0 {
		return nil
	}
	entries := make([]*html.Node, 0, len(items))
	for _, it := range items {
		entries = append(entries, entry(el("div", "entry",
			textEl("h3", "position", it.Get(types.FieldPosition)),
			textEl("p", "company", it.Get(types.FieldCompany)),
			textEl("p", "dates", FormatRange(it.Get(types.FieldStartDate), it.Get(types.FieldEndDate), FormatMonthYear)),
			textEl("p", "description", it.Get(types.FieldDescription)),
		)))
	}
	return section(types.SectionWorkExperience, "section", p.heading("Work Experience"), entries...)
}

func (p professional) projects(r types.Record) *html.Node {
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
	return section(types.SectionProjects, "section", p.heading("Projects"), entries...)
}

func (p professional) education(r types.Record) *html.Node {
	items := r.Items(types.SectionEducation)
	if len(items) == 0 {
		return nil
	}
	entries := make([]*html.Node, 0, len(items))
	for _, it := range items {
		entries = append(entries, entry(el("div", "entry",
			textEl("h3", "degree", it.Get(types.FieldDegree)),
			textEl("p", "institution", it.Get(types.FieldInstitution)),
			textEl("p", "dates", FormatRange(it.Get(types.FieldStartDate), it.Get(types.FieldEndDate), FormatMonthYear)),
			textEl("p", "note", it.Get(types.FieldDescription)),
		)))
	}
	return section(types.SectionEducation, "section", p.heading("Education"), entries...)
}

func (p professional) skills(r types.Record) *html.Node {
	items := r.Items(types.SectionSkills)
	if len(items) == 0 {
		return nil
	}
	list := el("ul", "skills")
	for _, it := range items {
		list.AppendChild(entry(el("li", "", txt(skillLabel(it)))))
	}
	return section(types.SectionSkills, "section", p.heading("Skills"), list)
}

func (p professional) certifications(r types.Record) *html.Node {
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
	return section(types.SectionCertifications, "section", p.heading("Certifications"), entries...)
}

func (p professional) languages(r types.Record) *html.Node {
	items := r.Items(types.SectionLanguages)
	if len(items) == 0 {
		return nil
	}
	list := el("ul", "languages")
	for _, it := range items {
		list.AppendChild(entry(el("li", "", txt(nameWithDetail(it.Get(types.FieldName), it.Get(types.FieldProficiency))))))
	}
	return section(types.SectionLanguages, "section", p.heading("Languages"), list)
}
