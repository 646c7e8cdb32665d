package turnstile

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultVerifyURL is Cloudflare's siteverify endpoint.
const DefaultVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// Client calls the Turnstile siteverify API.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *log.Logger
}

// NewClient builds a Client. An empty endpoint selects DefaultVerifyURL.
func NewClient(endpoint string, httpClient *http.Client, logger *log.Logger) *Client {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = DefaultVerifyURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{endpoint: endpoint, httpClient: httpClient, logger: logger}
}

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
	Hostname   string   `json:"hostname"`
	Action     string   `json:"action"`
}

// Verify reports whether token was accepted. Transport failures and non-2xx
// responses are returned as errors; a rejected token is (false, nil).
func (c *Client) Verify(ctx context.Context, secret, token, remoteIP string) (bool, error) {
	form := url.Values{}
	form.Set("secret", secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("build siteverify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("siteverify request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		message, _ := io.ReadAll(io.LimitReader(res.Body, 1<<16))
		return false, fmt.Errorf("siteverify status=%d body=%s", res.StatusCode, strings.TrimSpace(string(message)))
	}

	var payload siteverifyResponse
	if err := json.NewDecoder(io.LimitReader(res.Body, 1<<20)).Decode(&payload); err != nil {
		return false, fmt.Errorf("decode siteverify response: %w", err)
	}
	if !payload.Success && c.logger != nil {
		c.logger.Printf("turnstile rejected token ip=%q codes=%v", remoteIP, payload.ErrorCodes)
	}
	return payload.Success, nil
}
