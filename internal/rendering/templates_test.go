// Package rendering projects CV records into presentation trees using interchangeable templates.
package rendering

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/jonathan/cv-genie/internal/types"
)

var allTemplates = []string{TemplateProfessional, TemplateGradient, TemplateMinimalist}

func fullRecord() types.Record {
	return types.DefaultRecord().
		With(types.SectionPersonalInfo, types.Object{types.FieldFullName: "Ada Lovelace", types.FieldJobTitle: "Analyst"}).
		With(types.SectionContactInfo, types.Object{
			types.FieldPhone:    "555-0100",
			types.FieldEmail:    "ada@example.com",
			types.FieldLinkedIn: "linkedin.com/in/ada",
			types.FieldGitHub:   "https://github.com/ada",
			types.FieldAddress:  "London",
		}).
		With(types.SectionProfessionalSummary, types.Scalar("Writes programs for engines.")).
		With(types.SectionWorkExperience, types.List{{
			types.FieldCompany: "Analytical Engines", types.FieldPosition: "Programmer",
			types.FieldStartDate: "1842-09", types.FieldEndDate: "present", types.FieldDescription: "Notes on the engine",
		}}).
		With(types.SectionEducation, types.List{{
			types.FieldInstitution: "Home", types.FieldDegree: "Mathematics",
			types.FieldStartDate: "1830-01", types.FieldEndDate: "1835-06",
		}}).
		With(types.SectionSkills, types.List{{types.FieldName: "Go", types.FieldLevel: "Expert"}, {types.FieldName: "Math"}}).
		With(types.SectionCertifications, types.List{{
			types.FieldName: "Fellow", types.FieldIssuingOrganization: "Royal Society", types.FieldDate: "1843-01",
		}}).
		With(types.SectionLanguages, types.List{{types.FieldName: "English", types.FieldProficiency: "Native"}, {types.FieldName: "French"}}).
		With(types.SectionProjects, types.List{{
			types.FieldName: "Note G", types.FieldDescription: "Bernoulli numbers", types.FieldURL: "example.com/note-g",
		}})
}

func render(t *testing.T, r types.Record, id string) *goquery.Selection {
	t.Helper()
	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(DefaultRegistry().Render(r, id))
	doc := goquery.NewDocumentFromNode(root)
	region := doc.Find("#" + PreviewID)
	require.Equal(t, 1, region.Length())
	return region
}

func TestTemplates_EmptyRecordOmitsEverything(t *testing.T) {
	for _, id := range allTemplates {
		t.Run(id, func(t *testing.T) {
			region := render(t, types.DefaultRecord(), id)

			assert.Zero(t, region.Find("[data-section]").Length())
			assert.Zero(t, region.Find("[data-entry]").Length())
			assert.Zero(t, region.Find("h1, h2, h3").Length())
			assert.Zero(t, region.Find("header").Length())
			assert.Zero(t, region.Find("[data-contact]").Length())
			assert.Empty(t, strings.TrimSpace(region.Text()))
		})
	}
}

func TestTemplates_FullRecordRendersEverySection(t *testing.T) {
	for _, id := range allTemplates {
		t.Run(id, func(t *testing.T) {
			region := render(t, fullRecord(), id)

			for _, s := range types.Sections() {
				if s == types.SectionPersonalInfo || s == types.SectionContactInfo {
					continue
				}
				assert.Equal(t, 1, region.Find(`[data-section="`+s.String()+`"]`).Length(), "section %s", s)
			}
			assert.Equal(t, "Ada Lovelace", region.Find("h1").Text())
			assert.Equal(t, 5, region.Find("[data-contact]").Length())
			assert.Equal(t, 2, region.Find(`[data-section="skills"] [data-entry]`).Length())
		})
	}
}

func TestTemplates_SectionOmittedIndependently(t *testing.T) {
	r := fullRecord().
		With(types.SectionSkills, types.List{}).
		With(types.SectionProfessionalSummary, types.Scalar("")).
		With(types.SectionContactInfo, types.Object{types.FieldEmail: "ada@example.com"})

	for _, id := range allTemplates {
		t.Run(id, func(t *testing.T) {
			region := render(t, r, id)

			assert.Zero(t, region.Find(`[data-section="skills"]`).Length())
			assert.Zero(t, region.Find(`[data-section="professionalSummary"]`).Length())
			assert.NotContains(t, region.Text(), "Skills")
			assert.Equal(t, 1, region.Find(`[data-section="projects"]`).Length())

			contacts := region.Find("[data-contact]")
			require.Equal(t, 1, contacts.Length())
			assert.Equal(t, "email", contacts.AttrOr("data-contact", ""))
		})
	}
}

func TestTemplates_HeaderWithOnlyJobTitle(t *testing.T) {
	r := types.DefaultRecord().With(types.SectionPersonalInfo, types.Object{types.FieldJobTitle: "Analyst"})
	for _, id := range allTemplates {
		t.Run(id, func(t *testing.T) {
			region := render(t, r, id)
			assert.Zero(t, region.Find("h1").Length())
			assert.Equal(t, "Analyst", region.Find(".job-title").Text())
		})
	}
}

func TestTemplates_SkillsScenario(t *testing.T) {
	r := types.DefaultRecord().With(types.SectionSkills, types.List{{types.FieldName: "Go", types.FieldLevel: ""}})

	for _, id := range allTemplates {
		t.Run(id, func(t *testing.T) {
			region := render(t, r, id)
			entries := region.Find(`[data-section="skills"] [data-entry]`)
			require.Equal(t, 1, entries.Length())
			assert.Equal(t, "Go", entries.Text())
		})
	}
}

func TestTemplates_SkillLevelSuffix(t *testing.T) {
	r := types.DefaultRecord().With(types.SectionSkills, types.List{{types.FieldName: "Go", types.FieldLevel: "Expert"}})

	assert.Equal(t, "Go (Expert)", render(t, r, TemplateProfessional).Find(`[data-section="skills"] [data-entry]`).Text())
	assert.Equal(t, "Go (Expert)", render(t, r, TemplateGradient).Find(`[data-section="skills"] [data-entry]`).Text())
	// minimalist shows names only
	assert.Equal(t, "Go", render(t, r, TemplateMinimalist).Find(`[data-section="skills"] [data-entry]`).Text())
}

func TestTemplates_DateFallback(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		wantMonth string
		wantYear  string
	}{
		{"present lowercase", "2020-01", "present", "Jan 2020 - Present", "2020 - Present"},
		{"present uppercase", "2020-01", "PRESENT", "Jan 2020 - Present", "2020 - Present"},
		{"unparsable", "not-a-date", "2021-07", "not-a-date - Jul 2021", "not-a-date - 2021"},
		{"open start", "", "2021-07", "Jul 2021", "2021"},
	}

	for _, tt := range tests {
		r := types.DefaultRecord().With(types.SectionWorkExperience, types.List{{
			types.FieldCompany: "Acme", types.FieldStartDate: tt.start, types.FieldEndDate: tt.end,
		}})
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMonth, render(t, r, TemplateProfessional).Find(".dates").Text())
			assert.Equal(t, tt.wantMonth, render(t, r, TemplateGradient).Find(".dates").Text())
			assert.Equal(t, tt.wantYear, render(t, r, TemplateMinimalist).Find(".dates").Text())
		})
	}
}

func TestTemplates_LinksGetScheme(t *testing.T) {
	for _, id := range allTemplates {
		t.Run(id, func(t *testing.T) {
			region := render(t, fullRecord(), id)

			linkedin := region.Find(`[data-contact="linkedin"]`)
			assert.Equal(t, "https://linkedin.com/in/ada", linkedin.AttrOr("href", ""))
			assert.Equal(t, "LinkedIn", linkedin.Text())

			github := region.Find(`[data-contact="github"]`)
			assert.Equal(t, "https://github.com/ada", github.AttrOr("href", ""))

			project := region.Find(`[data-section="projects"] a`)
			assert.Equal(t, "https://example.com/note-g", project.AttrOr("href", ""))
			assert.Equal(t, "_blank", project.AttrOr("target", ""))
		})
	}
}

func TestTemplates_ContactOrder(t *testing.T) {
	first := func(id string) string {
		return render(t, fullRecord(), id).Find("[data-contact]").First().AttrOr("data-contact", "")
	}
	assert.Equal(t, "phone", first(TemplateProfessional))
	assert.Equal(t, "phone", first(TemplateGradient))
	assert.Equal(t, "email", first(TemplateMinimalist))
}

func TestTemplates_Headings(t *testing.T) {
	headings := func(id string) []string {
		var out []string
		render(t, fullRecord(), id).Find("h2").Each(func(_ int, s *goquery.Selection) {
			out = append(out, s.Text())
		})
		return out
	}

	assert.Equal(t, []string{"Summary", "Work Experience", "Projects", "Education", "Skills", "Certifications", "Languages"},
		headings(TemplateProfessional))
	assert.Equal(t, []string{"Professional Summary", "Work Experience", "Education", "Skills", "Certifications", "Languages", "Projects"},
		headings(TemplateGradient))
	assert.Equal(t, []string{"Experience", "Education", "Skills", "Certifications", "Languages", "Projects"},
		headings(TemplateMinimalist))
}

func TestMinimalist_InlineLists(t *testing.T) {
	region := render(t, fullRecord(), TemplateMinimalist)

	assert.Equal(t, "Go · Math", region.Find(`[data-section="skills"] .inline-list`).Text())
	assert.Equal(t, "English (Native) · French", region.Find(`[data-section="languages"] .inline-list`).Text())
	assert.Equal(t, "Fellow (Royal Society, 1843)", region.Find(`[data-section="certifications"] [data-entry]`).Text())
	assert.Equal(t, "Note G [Link]", region.Find(`[data-section="projects"] h3`).Text())
}

func TestGradient_CompanyAndCertification(t *testing.T) {
	region := render(t, fullRecord(), TemplateGradient)

	assert.Equal(t, "Programmer at Analytical Engines", region.Find(`[data-section="workExperience"] h3`).Text())
	assert.Equal(t, "Royal Society - Jan 1843", region.Find(".cert-detail").Text())
	assert.Equal(t, 4, region.Find(".grid > section").Length())
}

func TestStylesheets(t *testing.T) {
	reg := DefaultRegistry()
	for _, id := range allTemplates {
		css := reg.Resolve(id).Stylesheet()
		assert.Contains(t, css, ".cv-preview", id)
		assert.Contains(t, css, "."+id, id)
	}
}
