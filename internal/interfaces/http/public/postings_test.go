package public

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPostingList(t *testing.T) {
	f := newApplyFixture(t)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/postings", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp postingListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Items) != 3 {
		t.Fatalf("items = %+v", resp.Items)
	}
	if resp.Items[1].Slug != "graphic-designer-intern" || resp.Items[1].Meta == "" {
		t.Errorf("second item = %+v", resp.Items[1])
	}
}

func TestPostingDetail(t *testing.T) {
	f := newApplyFixture(t)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/postings/principal-research-program-manager", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp postingDetailResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Attachments) != 2 || resp.Attachments[1].Name != "project_summary" || resp.Attachments[1].Label != "1-Page Project Summary" {
		t.Fatalf("attachments = %+v", resp.Attachments)
	}
	if resp.RequiredFields[0] != "job_slug" || len(resp.RequiredFields) != 12 {
		t.Fatalf("required fields = %v", resp.RequiredFields)
	}
}

func TestPostingDetailNotFound(t *testing.T) {
	f := newApplyFixture(t)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/postings/astronaut", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}
