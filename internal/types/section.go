// Package types provides the CV record model shared by the editor, the renderers and the exporters.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SectionID identifies one of the fixed sections of a Record.
// The set is closed; there is no way to add a section at runtime.
type SectionID int

// Section identifiers in display/serialization order
const (
	SectionPersonalInfo SectionID = iota
	SectionContactInfo
	SectionProfessionalSummary
	SectionWorkExperience
	SectionEducation
	SectionSkills
	SectionCertifications
	SectionLanguages
	SectionProjects

	sectionCount
)

// Field names used by object sections and list items
const (
	FieldFullName = "fullName"
	FieldJobTitle = "jobTitle"

	FieldPhone    = "phone"
	FieldEmail    = "email"
	FieldLinkedIn = "linkedin"
	FieldGitHub   = "github"
	FieldAddress  = "address"

	FieldCompany     = "company"
	FieldPosition    = "position"
	FieldStartDate   = "startDate"
	FieldEndDate     = "endDate"
	FieldDescription = "description"

	FieldInstitution = "institution"
	FieldDegree      = "degree"

	FieldName  = "name"
	FieldLevel = "level"

	FieldIssuingOrganization = "issuingOrganization"
	FieldDate                = "date"

	FieldProficiency = "proficiency"

	FieldURL = "url"
)

type sectionDef struct {
	name   string
	kind   Kind
	fields []string
}

var sectionDefs = [sectionCount]sectionDef{
	SectionPersonalInfo: {
		name:   "personalInfo",
		kind:   KindObject,
		fields: []string{FieldFullName, FieldJobTitle},
	},
	SectionContactInfo: {
		name:   "contactInfo",
		kind:   KindObject,
		fields: []string{FieldPhone, FieldEmail, FieldLinkedIn, FieldGitHub, FieldAddress},
	},
	SectionProfessionalSummary: {
		name: "professionalSummary",
		kind: KindScalar,
	},
	SectionWorkExperience: {
		name:   "workExperience",
		kind:   KindList,
		fields: []string{FieldCompany, FieldPosition, FieldStartDate, FieldEndDate, FieldDescription},
	},
	SectionEducation: {
		name:   "education",
		kind:   KindList,
		fields: []string{FieldInstitution, FieldDegree, FieldStartDate, FieldEndDate, FieldDescription},
	},
	SectionSkills: {
		name:   "skills",
		kind:   KindList,
		fields: []string{FieldName, FieldLevel},
	},
	SectionCertifications: {
		name:   "certifications",
		kind:   KindList,
		fields: []string{FieldName, FieldIssuingOrganization, FieldDate},
	},
	SectionLanguages: {
		name:   "languages",
		kind:   KindList,
		fields: []string{FieldName, FieldProficiency},
	},
	SectionProjects: {
		name:   "projects",
		kind:   KindList,
		fields: []string{FieldName, FieldDescription, FieldURL},
	},
}

// Sections returns every section identifier in order.
func Sections() []SectionID {
	ids := make([]SectionID, 0, sectionCount)
	for id := SectionID(0); id < sectionCount; id++ {
		ids = append(ids, id)
	}
	return ids
}

// ListSections returns the identifiers of the list-shaped sections in order.
func ListSections() []SectionID {
	var ids []SectionID
	for _, id := range Sections() {
		if id.Kind() == KindList {
			ids = append(ids, id)
		}
	}
	return ids
}

// ParseSectionID resolves a wire name such as "workExperience".
func ParseSectionID(name string) (SectionID, bool) {
	for id := SectionID(0); id < sectionCount; id++ {
		if sectionDefs[id].name == name {
			return id, true
		}
	}
	return 0, false
}

// Valid reports whether s is one of the known sections.
func (s SectionID) Valid() bool {
	return s >= 0 && s < sectionCount
}

// String returns the wire name of the section.
func (s SectionID) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return sectionDefs[s].name
}

// Kind returns the declared shape of the section.
func (s SectionID) Kind() Kind {
	if !s.Valid() {
		return KindScalar
	}
	return sectionDefs[s].kind
}

// Fields returns the declared field names of an object section or of the
// items of a list section. Scalar and unknown sections have none.
func (s SectionID) Fields() []string {
	if !s.Valid() || len(sectionDefs[s].fields) == 0 {
		return nil
	}
	out := make([]string, len(sectionDefs[s].fields))
	copy(out, sectionDefs[s].fields)
	return out
}
