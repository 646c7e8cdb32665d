package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	adminapp "github.com/rocketiq/careers/api/internal/admin/application"
	admindomain "github.com/rocketiq/careers/api/internal/admin/domain"
	publicdomain "github.com/rocketiq/careers/api/internal/public/domain"
)

type stubService struct {
	filter adminapp.ApplicationFilter
	paging adminapp.Paging
	list   []admindomain.ApplicationSummary
	detail *publicdomain.Application
	err    error
}

func (s *stubService) List(_ context.Context, filter adminapp.ApplicationFilter, paging adminapp.Paging) ([]admindomain.ApplicationSummary, error) {
	s.filter, s.paging = filter, paging
	return s.list, s.err
}

func (s *stubService) Detail(_ context.Context, id string) (*publicdomain.Application, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.detail == nil || s.detail.ID != id {
		return nil, adminapp.ErrApplicationNotFound
	}
	return s.detail, nil
}

func newRouter(svc adminapp.ApplicationService) http.Handler {
	ist := time.FixedZone("IST", 5*60*60+30*60)
	h := NewHandler(Config{Applications: svc, Location: ist})
	r := chi.NewRouter()
	r.Route("/admin", h.Register)
	return r
}

func TestApplicationListPassesQuery(t *testing.T) {
	svc := &stubService{list: []admindomain.ApplicationSummary{{
		ID:        "a1",
		JobSlug:   "business-operations-associate",
		Name:      "Arjun",
		CreatedAt: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
	}}}

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/applications?jobSlug=business-operations-associate&keyword=arjun&limit=5&page=2", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if svc.filter.JobSlug != "business-operations-associate" || svc.filter.Keyword != "arjun" {
		t.Errorf("filter = %+v", svc.filter)
	}
	if svc.paging.Limit != 5 || svc.paging.Page != 2 {
		t.Errorf("paging = %+v", svc.paging)
	}

	var resp applicationListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Items) != 1 || resp.Items[0].CreatedAt.Hour() != 5 || resp.Items[0].CreatedAt.Minute() != 30 {
		t.Fatalf("items = %+v", resp.Items)
	}
}

func TestApplicationListDefaultsPaging(t *testing.T) {
	svc := &stubService{}

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/applications?limit=abc", nil))

	if rec.Code != http.StatusOK || svc.paging.Limit != 20 || svc.paging.Page != 1 {
		t.Fatalf("status=%d paging=%+v", rec.Code, svc.paging)
	}
}

func TestApplicationDetail(t *testing.T) {
	svc := &stubService{detail: &publicdomain.Application{
		ID:          "a1",
		JobSlug:     "graphic-designer-intern",
		Applicant:   publicdomain.Applicant{Name: "Ishita", Email: "ishita@example.com"},
		Attachments: []publicdomain.StoredAttachment{{Slot: publicdomain.SlotCoverLetter, Path: "covers/1_ishita.pdf"}},
	}}

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/applications/a1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp applicationDetailResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Email != "ishita@example.com" || resp.Attachments[0].Label != "Cover Letter" {
		t.Fatalf("response = %+v", resp)
	}
}

func TestApplicationDetailNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&stubService{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/applications/missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestApplicationDetailFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&stubService{err: errors.New("db down")}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/applications/a1", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}
