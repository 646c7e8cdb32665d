package common

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(nil, rec, http.StatusCreated, map[string]string{"status": "ok"})

	if rec.Code != http.StatusCreated || rec.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("status=%d content-type=%q", rec.Code, rec.Header().Get("Content-Type"))
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"status":"ok"}` {
		t.Fatalf("body = %s", got)
	}
}

func TestWriteJSONLogsEncodeFailure(t *testing.T) {
	var logs bytes.Buffer
	WriteJSON(log.New(&logs, "", 0), httptest.NewRecorder(), http.StatusOK, make(chan int))

	if !strings.HasPrefix(logs.String(), "failed to encode JSON response: ") {
		t.Fatalf("log = %q", logs.String())
	}
}
