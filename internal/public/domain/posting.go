package domain

// Slot identifies a named attachment requirement on an application form.
type Slot string

const (
	SlotResume         Slot = "resume"
	SlotCoverLetter    Slot = "cover_letter"
	SlotProjectSummary Slot = "project_summary"
)

// SlotOrder is the declaration order used for validation and error reporting.
var SlotOrder = []Slot{SlotResume, SlotCoverLetter, SlotProjectSummary}

// Label returns the applicant-facing name used in validation messages.
func (s Slot) Label() string {
	switch s {
	case SlotResume:
		return "Résumé / CV"
	case SlotCoverLetter:
		return "Cover Letter"
	case SlotProjectSummary:
		return "1-Page Project Summary"
	}
	return string(s)
}

// Category is the storage folder for uploads in this slot.
func (s Slot) Category() string {
	switch s {
	case SlotResume:
		return "resumes"
	case SlotCoverLetter:
		return "covers"
	case SlotProjectSummary:
		return "projects"
	}
	return "attachments"
}

// Valid reports whether s is one of the known slots.
func (s Slot) Valid() bool {
	for _, known := range SlotOrder {
		if s == known {
			return true
		}
	}
	return false
}

// Form field names shared by every posting page.
const (
	FieldJobSlug            = "job_slug"
	FieldName               = "name"
	FieldEmail              = "email"
	FieldAge                = "age"
	FieldCountry            = "country"
	FieldState              = "state"
	FieldWhatsApp           = "whatsapp"
	FieldQualification      = "qualification"
	FieldQualificationOther = "qualification_other"
	FieldDegreeName         = "degree_name"
	FieldHeardFrom          = "heard_from"
	FieldHeardFromOther     = "heard_from_other"
	FieldMotivation         = "motivation"
	FieldConsent            = "consent"
	FieldTurnstileToken     = "cf-turnstile-response"
)

// OptionalRequiredFields lists the fields a posting may mark as required, in the
// order they are reported when missing. job_slug, name, email and motivation are
// always required; a posting decides where the motivation answer comes from.
var OptionalRequiredFields = []string{
	FieldAge,
	FieldCountry,
	FieldState,
	FieldWhatsApp,
	FieldQualification,
	FieldDegreeName,
	FieldHeardFrom,
	FieldMotivation,
	FieldConsent,
}

// OtherOption is the select value that makes the paired free-text field mandatory.
const OtherOption = "Other"

// DefaultMotivationField is the form field the motivation answer is posted under.
const DefaultMotivationField = "q1"

// SlotRequirement declares whether a posting collects a slot and whether it is mandatory.
type SlotRequirement struct {
	Slot     Slot
	Required bool
}

// Posting is the per-listing configuration that drives the submission pipeline.
type Posting struct {
	Slug                  string
	Title                 string
	Blurb                 string
	Meta                  string
	Listed                bool
	RequiredFields        []string
	Slots                 []SlotRequirement
	QualificationOptions  []string
	HeardFromOptions      []string
	MotivationFields      []string
	MotivationPlaceholder string
	CustomFields          []string
}

// Requires reports whether field is mandatory for this posting.
func (p Posting) Requires(field string) bool {
	switch field {
	case FieldJobSlug, FieldName, FieldEmail, FieldMotivation:
		return true
	}
	for _, f := range p.RequiredFields {
		if f == field {
			return true
		}
	}
	return false
}

// Slot returns the requirement for s, if the posting collects it.
func (p Posting) Slot(s Slot) (SlotRequirement, bool) {
	for _, req := range p.Slots {
		if req.Slot == s {
			return req, true
		}
	}
	return SlotRequirement{}, false
}

// MotivationSources returns the ordered form fields consulted for the motivation answer.
func (p Posting) MotivationSources() []string {
	if len(p.MotivationFields) == 0 {
		return []string{DefaultMotivationField}
	}
	return p.MotivationFields
}
