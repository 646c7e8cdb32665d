package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rocketiq/careers/api/internal/public/domain"
)

const (
	discordAttempts = 3
	slackAttempts   = 1
)

// Notifier posts new-application announcements to the messenger gateway.
// Discord is tried first; Slack is the fallback channel.
type Notifier struct {
	endpoint           string
	discordDestination string
	slackDestination   string
	adminBaseURL       string
	httpClient         *http.Client
	retryDelay         time.Duration
}

// Config holds gateway and channel settings.
type Config struct {
	Endpoint           string
	DiscordDestination string
	SlackDestination   string
	AdminBaseURL       string
	HTTPClient         *http.Client
}

// NewNotifier returns nil when no endpoint or no channel is configured.
func NewNotifier(cfg Config) *Notifier {
	endpoint := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	discord := strings.TrimSpace(cfg.DiscordDestination)
	slack := strings.TrimSpace(cfg.SlackDestination)
	if endpoint == "" || (discord == "" && slack == "") {
		return nil
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Notifier{
		endpoint:           endpoint,
		discordDestination: discord,
		slackDestination:   slack,
		adminBaseURL:       strings.TrimRight(strings.TrimSpace(cfg.AdminBaseURL), "/"),
		httpClient:         httpClient,
		retryDelay:         200 * time.Millisecond,
	}
}

// NotifyApplication announces app. It returns nil as soon as one channel accepts the message.
func (n *Notifier) NotifyApplication(ctx context.Context, app domain.Application) error {
	identifier := app.ID
	if identifier == "" {
		identifier = app.Applicant.Email
	}

	var discordErr, slackErr error
	if n.discordDestination != "" {
		discordErr = n.sendWithRetry(ctx, n.discordDestination, identifier, buildDiscordMessage(n.adminBaseURL, app), discordAttempts)
		if discordErr == nil {
			return nil
		}
		discordErr = fmt.Errorf("discord: %w", discordErr)
	}
	if n.slackDestination != "" {
		slackErr = n.sendWithRetry(ctx, n.slackDestination, identifier, buildSlackMessage(n.adminBaseURL, app), slackAttempts)
		if slackErr == nil {
			return nil
		}
		slackErr = fmt.Errorf("slack: %w", slackErr)
	}
	return errors.Join(discordErr, slackErr)
}

// Budget is the longest NotifyApplication can take when every attempt runs into
// the HTTP client timeout: all Discord attempts, their retry delays and the Slack fallback.
func (n *Notifier) Budget() time.Duration {
	perAttempt := n.httpClient.Timeout
	if perAttempt <= 0 {
		perAttempt = 5 * time.Second
	}
	var budget time.Duration
	if n.discordDestination != "" {
		budget += discordAttempts*perAttempt + (discordAttempts-1)*n.retryDelay
	}
	if n.slackDestination != "" {
		budget += slackAttempts*perAttempt + (slackAttempts-1)*n.retryDelay
	}
	return budget
}

func buildDiscordMessage(adminBaseURL string, app domain.Application) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("New application from **%s** for `%s`.\n", app.Applicant.Name, app.JobSlug))
	builder.WriteString(fmt.Sprintf("- Email: %s\n", app.Applicant.Email))
	if location := joinNonEmpty(", ", app.Applicant.State, app.Applicant.Country); location != "" {
		builder.WriteString(fmt.Sprintf("- Location: %s\n", location))
	}
	if app.Qualification != "" {
		builder.WriteString(fmt.Sprintf("- Qualification: %s\n", app.Qualification))
	}
	builder.WriteString(fmt.Sprintf("- Attachments: %d\n", len(app.Attachments)))
	if app.ID != "" && adminBaseURL != "" {
		builder.WriteString(fmt.Sprintf("[Open in dashboard](%s/%s)\n", adminBaseURL, app.ID))
	}
	return builder.String()
}

func buildSlackMessage(adminBaseURL string, app domain.Application) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(":inbox_tray: New application from %s for %s\n", app.Applicant.Name, app.JobSlug))
	builder.WriteString(fmt.Sprintf("Email: %s\n", app.Applicant.Email))
	if app.ID != "" && adminBaseURL != "" {
		builder.WriteString(fmt.Sprintf("Dashboard: %s/%s\n", adminBaseURL, app.ID))
	}
	return builder.String()
}

func joinNonEmpty(sep string, values ...string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, sep)
}

func (n *Notifier) sendWithRetry(ctx context.Context, destination, identifier, text string, attempts int) error {
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		if lastErr = n.send(ctx, destination, identifier, text); lastErr == nil {
			return nil
		}
		if i == attempts-1 || n.retryDelay <= 0 {
			continue
		}
		select {
		case <-ctx.Done():
			return errors.Join(lastErr, ctx.Err())
		case <-time.After(n.retryDelay):
		}
	}
	return lastErr
}

func (n *Notifier) send(ctx context.Context, destination, identifier, text string) error {
	body, err := json.Marshal(map[string]string{
		"userId":      identifier,
		"text":        text,
		"destination": destination,
	})
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint+"/messages", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		message, _ := io.ReadAll(io.LimitReader(res.Body, 1<<16))
		return fmt.Errorf("gateway status=%d body=%s", res.StatusCode, strings.TrimSpace(string(message)))
	}
	return nil
}
