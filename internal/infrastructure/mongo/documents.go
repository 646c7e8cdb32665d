package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rocketiq/careers/api/internal/public/domain"
)

// ApplicationDocument is the applications collection schema.
// Field names match the Postgres applications table.
type ApplicationDocument struct {
	ID                 primitive.ObjectID   `bson:"_id"`
	JobSlug            string               `bson:"job_slug"`
	Name               string               `bson:"name"`
	Email              string               `bson:"email"`
	Age                *int                 `bson:"age,omitempty"`
	Country            string               `bson:"country,omitempty"`
	State              string               `bson:"state,omitempty"`
	WhatsApp           string               `bson:"whatsapp,omitempty"`
	Qualification      string               `bson:"qualification,omitempty"`
	QualificationOther string               `bson:"qualification_other,omitempty"`
	DegreeName         string               `bson:"degree_name,omitempty"`
	HeardFrom          string               `bson:"heard_from,omitempty"`
	HeardFromOther     string               `bson:"heard_from_other,omitempty"`
	Motivation         string               `bson:"motivation,omitempty"`
	Consent            bool                 `bson:"consent"`
	Experiences        []ExperienceDocument `bson:"experiences"`
	ResumePath         string               `bson:"resume_path,omitempty"`
	CoverLetterPath    string               `bson:"cover_letter_path,omitempty"`
	ProjectSummaryPath string               `bson:"project_summary_path,omitempty"`
	Attachments        []AttachmentDocument `bson:"attachments,omitempty"`
	CustomAnswers      map[string]string    `bson:"custom_answers,omitempty"`
	SourceIP           string               `bson:"source_ip,omitempty"`
	CreatedAt          time.Time            `bson:"created_at"`
}

// ExperienceDocument is one normalized experience row.
type ExperienceDocument struct {
	Role         string `bson:"role"`
	Organization string `bson:"org"`
	Dates        string `bson:"dates"`
	Summary      string `bson:"summary"`
}

// AttachmentDocument records one stored upload.
type AttachmentDocument struct {
	Slot        string `bson:"slot"`
	Path        string `bson:"path"`
	Size        int64  `bson:"size"`
	ContentType string `bson:"contentType"`
}

// OrphanedAttachmentDocument records uploads left without an application record.
type OrphanedAttachmentDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	JobSlug   string             `bson:"job_slug"`
	Email     string             `bson:"email"`
	Paths     []string           `bson:"paths"`
	Cause     string             `bson:"cause"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"created_at"`
}

func newApplicationDocument(app *domain.Application) ApplicationDocument {
	doc := ApplicationDocument{
		JobSlug:            app.JobSlug,
		Name:               app.Applicant.Name,
		Email:              app.Applicant.Email,
		Age:                app.Applicant.Age,
		Country:            app.Applicant.Country,
		State:              app.Applicant.State,
		WhatsApp:           app.Applicant.WhatsApp,
		Qualification:      app.Qualification,
		QualificationOther: app.QualificationOther,
		DegreeName:         app.DegreeName,
		HeardFrom:          app.HeardFrom,
		HeardFromOther:     app.HeardFromOther,
		Motivation:         app.Motivation,
		Consent:            app.Consent,
		Experiences:        make([]ExperienceDocument, 0, len(app.Experiences)),
		ResumePath:         app.AttachmentPath(domain.SlotResume),
		CoverLetterPath:    app.AttachmentPath(domain.SlotCoverLetter),
		ProjectSummaryPath: app.AttachmentPath(domain.SlotProjectSummary),
		SourceIP:           app.SourceIP,
		CreatedAt:          app.CreatedAt,
	}
	for _, exp := range app.Experiences {
		doc.Experiences = append(doc.Experiences, ExperienceDocument{
			Role:         exp.Role,
			Organization: exp.Organization,
			Dates:        exp.Dates,
			Summary:      exp.Summary,
		})
	}
	for _, att := range app.Attachments {
		doc.Attachments = append(doc.Attachments, AttachmentDocument{
			Slot:        string(att.Slot),
			Path:        att.Path,
			Size:        att.Size,
			ContentType: att.ContentType,
		})
	}
	if len(app.CustomAnswers) > 0 {
		doc.CustomAnswers = app.CustomAnswers
	}
	return doc
}

func (doc ApplicationDocument) toDomain() domain.Application {
	app := domain.Application{
		ID:      doc.ID.Hex(),
		JobSlug: doc.JobSlug,
		Applicant: domain.Applicant{
			Name:     doc.Name,
			Email:    doc.Email,
			Age:      doc.Age,
			Country:  doc.Country,
			State:    doc.State,
			WhatsApp: doc.WhatsApp,
		},
		Qualification:      doc.Qualification,
		QualificationOther: doc.QualificationOther,
		DegreeName:         doc.DegreeName,
		HeardFrom:          doc.HeardFrom,
		HeardFromOther:     doc.HeardFromOther,
		Motivation:         doc.Motivation,
		Consent:            doc.Consent,
		Experiences:        make([]domain.Experience, 0, len(doc.Experiences)),
		CustomAnswers:      doc.CustomAnswers,
		SourceIP:           doc.SourceIP,
		CreatedAt:          doc.CreatedAt,
	}
	for _, exp := range doc.Experiences {
		app.Experiences = append(app.Experiences, domain.Experience{
			Role:         exp.Role,
			Organization: exp.Organization,
			Dates:        exp.Dates,
			Summary:      exp.Summary,
		})
	}
	for _, att := range doc.Attachments {
		app.Attachments = append(app.Attachments, domain.StoredAttachment{
			Slot:        domain.Slot(att.Slot),
			Path:        att.Path,
			Size:        att.Size,
			ContentType: att.ContentType,
		})
	}
	if len(app.Attachments) == 0 {
		app.Attachments = attachmentsFromPaths(doc.ResumePath, doc.CoverLetterPath, doc.ProjectSummaryPath)
	}
	return app
}

// attachmentsFromPaths rebuilds attachment entries for records that only carry the path columns.
func attachmentsFromPaths(resume, cover, project string) []domain.StoredAttachment {
	paths := map[domain.Slot]string{
		domain.SlotResume:         resume,
		domain.SlotCoverLetter:    cover,
		domain.SlotProjectSummary: project,
	}
	var out []domain.StoredAttachment
	for _, slot := range domain.SlotOrder {
		if path := paths[slot]; path != "" {
			out = append(out, domain.StoredAttachment{Slot: slot, Path: path, ContentType: domain.PDFContentType})
		}
	}
	return out
}
