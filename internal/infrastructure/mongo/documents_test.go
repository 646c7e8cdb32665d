package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rocketiq/careers/api/internal/public/domain"
)

func sampleApplication() *domain.Application {
	age := 23
	return &domain.Application{
		JobSlug: "principal-research-program-manager",
		Applicant: domain.Applicant{
			Name:    "Meera Iyer",
			Email:   "meera@example.com",
			Age:     &age,
			Country: "India",
		},
		Qualification: "PhD graduate",
		Consent:       true,
		Experiences:   []domain.Experience{{Role: "Lead", Organization: "IISc"}},
		Attachments: []domain.StoredAttachment{
			{Slot: domain.SlotResume, Path: "resumes/1_meera_iyer.pdf", Size: 100, ContentType: domain.PDFContentType},
			{Slot: domain.SlotProjectSummary, Path: "projects/1_meera_iyer.pdf", Size: 50, ContentType: domain.PDFContentType},
		},
		CustomAnswers: map[string]string{"portfolio": "https://example.com"},
		CreatedAt:     time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestApplicationDocumentRoundTrip(t *testing.T) {
	doc := newApplicationDocument(sampleApplication())
	doc.ID = primitive.NewObjectID()

	if doc.ResumePath != "resumes/1_meera_iyer.pdf" || doc.CoverLetterPath != "" || doc.ProjectSummaryPath != "projects/1_meera_iyer.pdf" {
		t.Fatalf("unexpected path columns: %+v", doc)
	}

	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded ApplicationDocument
	if err := bson.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	app := decoded.toDomain()
	if app.ID != doc.ID.Hex() || app.Applicant.Age == nil || *app.Applicant.Age != 23 {
		t.Fatalf("unexpected application: %+v", app)
	}
	if app.AttachmentPath(domain.SlotProjectSummary) != "projects/1_meera_iyer.pdf" {
		t.Errorf("project path = %q", app.AttachmentPath(domain.SlotProjectSummary))
	}
	if !app.CreatedAt.Equal(doc.CreatedAt) {
		t.Errorf("created_at = %v", app.CreatedAt)
	}
}

func TestApplicationDocumentWithoutAttachmentList(t *testing.T) {
	doc := ApplicationDocument{
		ID:                 primitive.NewObjectID(),
		ResumePath:         "resumes/1_a.pdf",
		ProjectSummaryPath: "projects/1_a.pdf",
	}

	app := doc.toDomain()
	if len(app.Attachments) != 2 || app.Attachments[0].Slot != domain.SlotResume || app.Attachments[1].Slot != domain.SlotProjectSummary {
		t.Fatalf("attachments = %+v", app.Attachments)
	}
}
