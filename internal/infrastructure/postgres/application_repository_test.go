package postgres

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	adminapp "github.com/rocketiq/careers/api/internal/admin/application"
	"github.com/rocketiq/careers/api/internal/public/domain"
)

func TestBuildFindQueryWithoutFilters(t *testing.T) {
	query, args := buildFindQuery(adminapp.ApplicationFilter{}, adminapp.Paging{})

	if strings.Contains(query, "WHERE") || strings.Contains(query, "LIMIT") {
		t.Fatalf("unexpected clauses: %s", query)
	}
	if !strings.HasSuffix(query, "ORDER BY created_at DESC") {
		t.Fatalf("query should order newest first: %s", query)
	}
	if len(args) != 0 {
		t.Fatalf("args = %v", args)
	}
}

func TestBuildFindQueryNumbersPlaceholders(t *testing.T) {
	query, args := buildFindQuery(
		adminapp.ApplicationFilter{JobSlug: "graphic-designer-intern", Keyword: "50%_off"},
		adminapp.Paging{Page: 3, Limit: 10},
	)

	for _, want := range []string{"job_slug = $1", "name ILIKE $2", "motivation ILIKE $2", "LIMIT $3", "OFFSET $4"} {
		if !strings.Contains(query, want) {
			t.Errorf("query missing %q: %s", want, query)
		}
	}
	if len(args) != 4 {
		t.Fatalf("args = %v", args)
	}
	if args[1] != `%50\%\_off%` {
		t.Errorf("keyword arg = %v", args[1])
	}
	if args[2] != 10 || args[3] != 20 {
		t.Errorf("paging args = %v %v", args[2], args[3])
	}
}

func TestEncodeApplicationJSON(t *testing.T) {
	app := &domain.Application{
		Experiences: []domain.Experience{{Role: "Intern", Organization: "ISRO", Dates: "2024"}},
		Attachments: []domain.StoredAttachment{{Slot: domain.SlotResume, Path: "resumes/1_a.pdf", Size: 10, ContentType: domain.PDFContentType}},
	}

	experiences, attachments, answers, err := encodeApplicationJSON(app)
	if err != nil {
		t.Fatalf("encodeApplicationJSON: %v", err)
	}

	var exp []map[string]string
	if err := json.Unmarshal(experiences, &exp); err != nil || exp[0]["org"] != "ISRO" {
		t.Fatalf("experiences = %s (%v)", experiences, err)
	}
	if !strings.Contains(string(attachments), `"slot":"resume"`) {
		t.Errorf("attachments = %s", attachments)
	}
	if string(answers) != "{}" {
		t.Errorf("answers = %s", answers)
	}
}

func TestNullable(t *testing.T) {
	if nullable("") != nil {
		t.Fatal("empty string should be NULL")
	}
	if p := nullable("covers/1_a.pdf"); p == nil || *p != "covers/1_a.pdf" {
		t.Fatalf("nullable = %v", p)
	}
}

func TestInsertArgsStoresEmptyClarificationsAsNull(t *testing.T) {
	app := &domain.Application{
		JobSlug:        "business-operations-intern",
		Applicant:      domain.Applicant{Name: "Jane Doe", Email: "jane@example.com"},
		Qualification:  "Bachelor's",
		HeardFrom:      "Other",
		HeardFromOther: "Campus fair",
		CreatedAt:      time.Date(2025, 8, 1, 9, 30, 0, 0, time.UTC),
	}

	args := insertArgs(uuid.New(), app, []byte("[]"), []byte("[]"), []byte("{}"))

	if len(args) != 23 {
		t.Fatalf("len(args) = %d, want 23", len(args))
	}
	if v, ok := args[9].(*string); !ok || v != nil {
		t.Fatalf("qualification_other = %#v, want NULL", args[9])
	}
	if v, ok := args[12].(*string); !ok || v == nil || *v != "Campus fair" {
		t.Fatalf("heard_from_other = %#v", args[12])
	}
	if v, ok := args[16].(*string); !ok || v != nil {
		t.Fatalf("resume_path = %#v, want NULL", args[16])
	}
}
