package messenger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rocketiq/careers/api/internal/public/domain"
)

type gateway struct {
	mu       sync.Mutex
	received []map[string]string
	failFor  string
}

func (g *gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/messages" {
		http.NotFound(w, r)
		return
	}
	var payload map[string]string
	_ = json.NewDecoder(r.Body).Decode(&payload)

	g.mu.Lock()
	g.received = append(g.received, payload)
	g.mu.Unlock()

	if payload["destination"] == g.failFor {
		http.Error(w, "channel unavailable", http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func sampleApplication() domain.Application {
	return domain.Application{
		ID:        "64f0c0ffee",
		JobSlug:   "graphic-designer-intern",
		Applicant: domain.Applicant{Name: "Ishita Rao", Email: "ishita@example.com", State: "Kerala", Country: "India"},
	}
}

func newTestNotifier(url string) *Notifier {
	n := NewNotifier(Config{
		Endpoint:           url + "/",
		DiscordDestination: "discord:careers",
		SlackDestination:   "slack:careers",
		AdminBaseURL:       "https://admin.example.com/applications",
	})
	n.retryDelay = 0
	return n
}

func TestNotifyDiscordFirst(t *testing.T) {
	gw := &gateway{}
	srv := httptest.NewServer(gw)
	defer srv.Close()

	if err := newTestNotifier(srv.URL).NotifyApplication(context.Background(), sampleApplication()); err != nil {
		t.Fatalf("NotifyApplication: %v", err)
	}
	if len(gw.received) != 1 {
		t.Fatalf("expected one message, got %d", len(gw.received))
	}
	msg := gw.received[0]
	if msg["destination"] != "discord:careers" || msg["userId"] != "64f0c0ffee" {
		t.Fatalf("unexpected payload: %v", msg)
	}
	if !strings.Contains(msg["text"], "https://admin.example.com/applications/64f0c0ffee") || !strings.Contains(msg["text"], "Kerala, India") {
		t.Fatalf("unexpected text: %q", msg["text"])
	}
}

func TestNotifyFallsBackToSlack(t *testing.T) {
	gw := &gateway{failFor: "discord:careers"}
	srv := httptest.NewServer(gw)
	defer srv.Close()

	if err := newTestNotifier(srv.URL).NotifyApplication(context.Background(), sampleApplication()); err != nil {
		t.Fatalf("NotifyApplication: %v", err)
	}
	if len(gw.received) != 4 {
		t.Fatalf("expected 3 discord attempts and 1 slack, got %d", len(gw.received))
	}
	if gw.received[3]["destination"] != "slack:careers" {
		t.Fatalf("last message went to %q", gw.received[3]["destination"])
	}
}

func TestNotifyHangingDiscordStillReachesSlackWithinBudget(t *testing.T) {
	var (
		mu            sync.Mutex
		discordCalls  int
		slackReceived int
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		_ = json.NewDecoder(r.Body).Decode(&payload)
		if payload["destination"] == "discord:careers" {
			mu.Lock()
			discordCalls++
			mu.Unlock()
			<-r.Context().Done()
			return
		}
		mu.Lock()
		slackReceived++
		mu.Unlock()
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	n := NewNotifier(Config{
		Endpoint:           srv.URL,
		DiscordDestination: "discord:careers",
		SlackDestination:   "slack:careers",
		HTTPClient:         &http.Client{Timeout: 100 * time.Millisecond},
	})
	n.retryDelay = 10 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), n.Budget())
	defer cancel()
	if err := n.NotifyApplication(ctx, sampleApplication()); err != nil {
		t.Fatalf("NotifyApplication: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if discordCalls != 3 || slackReceived != 1 {
		t.Fatalf("discord attempts=%d slack attempts=%d", discordCalls, slackReceived)
	}
}

func TestBudgetCoversEveryAttempt(t *testing.T) {
	n := NewNotifier(Config{
		Endpoint:           "http://gateway",
		DiscordDestination: "discord:careers",
		SlackDestination:   "slack:careers",
		HTTPClient:         &http.Client{Timeout: 2 * time.Second},
	})
	if got, want := n.Budget(), 8*time.Second+400*time.Millisecond; got != want {
		t.Fatalf("budget = %v, want %v", got, want)
	}

	slackOnly := NewNotifier(Config{
		Endpoint:         "http://gateway",
		SlackDestination: "slack:careers",
		HTTPClient:       &http.Client{Timeout: 2 * time.Second},
	})
	if got, want := slackOnly.Budget(), 2*time.Second; got != want {
		t.Fatalf("slack-only budget = %v, want %v", got, want)
	}
}

func TestNotifyAllChannelsFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := newTestNotifier(srv.URL).NotifyApplication(context.Background(), sampleApplication())
	if err == nil || !strings.Contains(err.Error(), "discord") || !strings.Contains(err.Error(), "slack") {
		t.Fatalf("expected combined error, got %v", err)
	}
}

func TestNewNotifierDisabled(t *testing.T) {
	if NewNotifier(Config{Endpoint: "http://gateway"}) != nil {
		t.Fatal("notifier without channels should be nil")
	}
	if NewNotifier(Config{DiscordDestination: "discord:careers"}) != nil {
		t.Fatal("notifier without endpoint should be nil")
	}
}
