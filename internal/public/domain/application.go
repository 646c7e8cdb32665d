package domain

import (
	"io"
	"time"
)

// Applicant holds the contact and basic profile fields of a submission.
type Applicant struct {
	Name     string
	Email    string
	Age      *int
	Country  string
	State    string
	WhatsApp string
}

// Experience is one row of the "relevant experience" section.
type Experience struct {
	Role         string
	Organization string
	Dates        string
	Summary      string
}

// FileUpload is an attachment as received from the form, before it is stored.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// StoredAttachment references an uploaded blob by its storage path.
type StoredAttachment struct {
	Slot        Slot
	Path        string
	Size        int64
	ContentType string
}

// Application is the flattened record written once per successful submission.
type Application struct {
	ID                 string
	JobSlug            string
	Applicant          Applicant
	Qualification      string
	QualificationOther string
	DegreeName         string
	HeardFrom          string
	HeardFromOther     string
	Motivation         string
	Consent            bool
	Experiences        []Experience
	Attachments        []StoredAttachment
	CustomAnswers      map[string]string
	SourceIP           string
	CreatedAt          time.Time
}

// AttachmentPath returns the storage path stored for slot, or "" if none was uploaded.
func (a Application) AttachmentPath(slot Slot) string {
	for _, att := range a.Attachments {
		if att.Slot == slot {
			return att.Path
		}
	}
	return ""
}
