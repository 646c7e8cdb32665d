package supabase

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rocketiq/careers/api/internal/public/application"
)

func TestUploadSendsObject(t *testing.T) {
	var (
		gotPath    string
		gotHeaders http.Header
		gotBody    string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotHeaders = r.Header.Clone()
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		_, _ = w.Write([]byte(`{"Key":"applications/resumes/1_jane.pdf"}`))
	}))
	defer srv.Close()

	store := NewStorage(srv.URL+"/", "service-key", "applications", srv.Client())
	err := store.Upload(context.Background(), application.StorageObject{
		Path:        "resumes/1_jane.pdf",
		Body:        []byte("%PDF-1.7"),
		ContentType: "application/pdf",
		NoOverwrite: true,
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if gotPath != "/storage/v1/object/applications/resumes/1_jane.pdf" {
		t.Errorf("path = %s", gotPath)
	}
	if gotHeaders.Get("Authorization") != "Bearer service-key" || gotHeaders.Get("apikey") != "service-key" {
		t.Errorf("auth headers = %v", gotHeaders)
	}
	if gotHeaders.Get("x-upsert") != "false" || gotHeaders.Get("Content-Type") != "application/pdf" {
		t.Errorf("upload headers = %v", gotHeaders)
	}
	if gotBody != "%PDF-1.7" {
		t.Errorf("body = %q", gotBody)
	}
}

func TestUploadDuplicateObject(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"conflict", http.StatusConflict, `{"error":"Duplicate"}`},
		{"bad request duplicate", http.StatusBadRequest, `{"statusCode":"409","error":"Duplicate","message":"The resource already exists"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := NewStorage(srv.URL, "k", "applications", srv.Client()).Upload(context.Background(), application.StorageObject{Path: "covers/1_a.pdf", NoOverwrite: true})
			if !errors.Is(err, application.ErrObjectExists) {
				t.Fatalf("expected ErrObjectExists, got %v", err)
			}
		})
	}
}

func TestUploadServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := NewStorage(srv.URL, "k", "applications", srv.Client()).Upload(context.Background(), application.StorageObject{Path: "projects/1_a.pdf"})
	if err == nil || errors.Is(err, application.ErrObjectExists) {
		t.Fatalf("expected generic upload error, got %v", err)
	}
}

func TestUploadNotConfigured(t *testing.T) {
	store := NewStorage("", "", "applications", nil)
	if store.Configured() {
		t.Fatal("expected unconfigured storage")
	}
	if err := store.Upload(context.Background(), application.StorageObject{Path: "resumes/x.pdf"}); err == nil {
		t.Fatal("expected error")
	}
}
