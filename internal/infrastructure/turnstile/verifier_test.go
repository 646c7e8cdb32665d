package turnstile

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestVerifySendsFormAndReadsSuccess(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm: %v", err)
		}
		got = map[string]string{
			"secret":   r.PostForm.Get("secret"),
			"response": r.PostForm.Get("response"),
			"remoteip": r.PostForm.Get("remoteip"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"error-codes":[]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client(), nil)
	ok, err := client.Verify(context.Background(), "s3cret", "tok", "203.0.113.7")
	if err != nil || !ok {
		t.Fatalf("Verify = %v, %v", ok, err)
	}
	if got["secret"] != "s3cret" || got["response"] != "tok" || got["remoteip"] != "203.0.113.7" {
		t.Fatalf("unexpected form: %v", got)
	}
}

func TestVerifyRejectedToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error-codes":["invalid-input-response"]}`))
	}))
	defer srv.Close()

	ok, err := NewClient(srv.URL, srv.Client(), nil).Verify(context.Background(), "s", "bad", "")
	if err != nil || ok {
		t.Fatalf("Verify = %v, %v; want false, nil", ok, err)
	}
}

func TestVerifyUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL, srv.Client(), nil).Verify(context.Background(), "s", "tok", ""); err == nil {
		t.Fatal("expected error for 502 response")
	}
}

func TestVerifyMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL, srv.Client(), nil).Verify(context.Background(), "s", "tok", ""); err == nil {
		t.Fatal("expected decode error")
	}
}
