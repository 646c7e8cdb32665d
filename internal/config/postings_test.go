package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rocketiq/careers/api/internal/public/domain"
)

func TestEmbeddedPostings(t *testing.T) {
	catalog, err := LoadPostings("")
	if err != nil {
		t.Fatalf("LoadPostings: %v", err)
	}

	if got := len(catalog.All()); got != 6 {
		t.Fatalf("expected 6 postings, got %d", got)
	}

	listed := catalog.Listed()
	if len(listed) != 3 || listed[0].Slug != "business-operations-associate" {
		t.Fatalf("unexpected listed postings: %+v", listed)
	}
	if listed[0].Meta != "Remote • ~2–3 hrs/day" {
		t.Errorf("meta = %q", listed[0].Meta)
	}

	wantSlots := map[string][]domain.Slot{
		"business-operations-associate":      {domain.SlotResume, domain.SlotCoverLetter, domain.SlotProjectSummary},
		"business-operations-manager":        {domain.SlotResume, domain.SlotCoverLetter, domain.SlotProjectSummary},
		"graphic-designer-intern":            {domain.SlotResume, domain.SlotCoverLetter, domain.SlotProjectSummary},
		"principal-research-program-manager": {domain.SlotResume, domain.SlotProjectSummary},
		"business-operations-intern":         {domain.SlotResume},
		"research-projects-developer-intern": {domain.SlotResume},
	}
	for slug, slots := range wantSlots {
		posting, ok := catalog.Get(slug)
		if !ok {
			t.Fatalf("posting %s missing", slug)
		}
		if len(posting.Slots) != len(slots) {
			t.Fatalf("%s slots = %+v", slug, posting.Slots)
		}
		for i, slot := range slots {
			if posting.Slots[i].Slot != slot || !posting.Slots[i].Required {
				t.Errorf("%s slot %d = %+v, want required %s", slug, i, posting.Slots[i], slot)
			}
		}
		if !posting.Requires(domain.FieldConsent) || !posting.Requires(domain.FieldAge) {
			t.Errorf("%s should require age and consent", slug)
		}
	}

	intern, _ := catalog.Get("business-operations-intern")
	if intern.QualificationOptions[0] != "High school (Class 12)" {
		t.Errorf("intern qualification options = %v", intern.QualificationOptions)
	}
}

func TestLookupFallsBackToDefault(t *testing.T) {
	catalog, err := LoadPostings("")
	if err != nil {
		t.Fatalf("LoadPostings: %v", err)
	}

	posting := catalog.Lookup("retired-role")
	if posting.Slug != "default" {
		t.Fatalf("expected default posting, got %q", posting.Slug)
	}
	if posting.Requires(domain.FieldAge) || posting.Requires(domain.FieldConsent) {
		t.Errorf("default posting should not require age or consent")
	}
	if req, ok := posting.Slot(domain.SlotCoverLetter); !ok || req.Required {
		t.Errorf("default cover letter should be optional, got %+v %v", req, ok)
	}
	if _, ok := catalog.Get("retired-role"); ok {
		t.Errorf("Get should not fall back")
	}
}

func TestParsePostingsRejectsUnknownSlot(t *testing.T) {
	raw := []byte(`
default:
  attachments:
    - { slot: resume, required: true }
postings:
  - slug: video-editor
    title: Video Editor
    attachments:
      - { slot: showreel, required: true }
`)

	_, err := ParsePostings(raw)
	if !errors.Is(err, domain.ErrUnknownSlot) {
		t.Fatalf("expected ErrUnknownSlot, got %v", err)
	}
}

func TestParsePostingsRejectsDuplicateSlug(t *testing.T) {
	raw := []byte(`
default: {}
postings:
  - { slug: designer, title: Designer }
  - { slug: designer, title: Designer again }
`)

	_, err := ParsePostings(raw)
	if err == nil || !strings.Contains(err.Error(), "declared twice") {
		t.Fatalf("expected duplicate slug error, got %v", err)
	}
}

func TestParsePostingsSchemaViolation(t *testing.T) {
	raw := []byte(`
default: {}
postings:
  - slug: designer
    title: Designer
    required_fields: [favourite_colour]
`)

	_, err := ParsePostings(raw)
	if err == nil || !strings.Contains(err.Error(), "schema validation failed") {
		t.Fatalf("expected schema error, got %v", err)
	}
}

func TestLoadPostingsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "postings.yaml")
	raw := []byte(`
default:
  required_fields: [motivation]
  motivation_fields: [q1, q2]
  motivation_placeholder: "(not provided)"
postings:
  - slug: video-editor
    title: Video Editor
    listed: true
    custom_fields: [portfolio_url]
`)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	catalog, err := LoadPostings(path)
	if err != nil {
		t.Fatalf("LoadPostings: %v", err)
	}
	fallback := catalog.Lookup("")
	if fallback.MotivationPlaceholder != "(not provided)" || len(fallback.MotivationFields) != 2 {
		t.Fatalf("unexpected default posting: %+v", fallback)
	}
	editor, _ := catalog.Get("video-editor")
	if len(editor.CustomFields) != 1 || editor.CustomFields[0] != "portfolio_url" {
		t.Fatalf("unexpected custom fields: %v", editor.CustomFields)
	}
}

func TestDurationOrDefault(t *testing.T) {
	t.Setenv("VERIFY_TIMEOUT", "750ms")
	if got := durationOrDefault("VERIFY_TIMEOUT", 0); got.Milliseconds() != 750 {
		t.Fatalf("got %v", got)
	}
	t.Setenv("VERIFY_TIMEOUT", "soon")
	if got := durationOrDefault("VERIFY_TIMEOUT", 5); got != 5 {
		t.Fatalf("invalid duration should fall back, got %v", got)
	}
}

func TestParseList(t *testing.T) {
	t.Setenv("API_ALLOWED_ORIGINS", " https://rocketiq.in , ,https://www.rocketiq.in")
	got := parseList("API_ALLOWED_ORIGINS", []string{"*"})
	if len(got) != 2 || got[1] != "https://www.rocketiq.in" {
		t.Fatalf("parseList = %v", got)
	}
}
