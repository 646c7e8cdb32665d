package supabase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rocketiq/careers/api/internal/public/application"
)

// Storage uploads objects to a Supabase Storage bucket with the service role key.
type Storage struct {
	baseURL    string
	serviceKey string
	bucket     string
	httpClient *http.Client
}

// NewStorage builds a Storage client for bucket.
func NewStorage(baseURL, serviceKey, bucket string, httpClient *http.Client) *Storage {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Storage{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		serviceKey: strings.TrimSpace(serviceKey),
		bucket:     strings.Trim(strings.TrimSpace(bucket), "/"),
		httpClient: httpClient,
	}
}

// Configured reports whether URL, key and bucket are all set.
func (s *Storage) Configured() bool {
	return s.baseURL != "" && s.serviceKey != "" && s.bucket != ""
}

// Upload stores object.Body at object.Path inside the bucket.
func (s *Storage) Upload(ctx context.Context, object application.StorageObject) error {
	if !s.Configured() {
		return errors.New("supabase storage is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.objectURL(object.Path), bytes.NewReader(object.Body))
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("apikey", s.serviceKey)
	req.Header.Set("Content-Type", object.ContentType)
	req.Header.Set("x-upsert", strconv.FormatBool(!object.NoOverwrite))
	req.Header.Set("cache-control", "max-age=3600")

	res, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 300 {
		return nil
	}

	message, _ := io.ReadAll(io.LimitReader(res.Body, 1<<16))
	body := strings.TrimSpace(string(message))
	if isDuplicate(res.StatusCode, body) {
		return fmt.Errorf("%w: %s", application.ErrObjectExists, object.Path)
	}
	return fmt.Errorf("upload status=%d body=%s", res.StatusCode, body)
}

// Ping checks that the bucket is reachable with the configured key.
func (s *Storage) Ping(ctx context.Context) error {
	if !s.Configured() {
		return errors.New("supabase storage is not configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/storage/v1/bucket/"+url.PathEscape(s.bucket), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("apikey", s.serviceKey)

	res, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 1<<16))
	if res.StatusCode >= 300 {
		return fmt.Errorf("bucket %s status=%d", s.bucket, res.StatusCode)
	}
	return nil
}

func (s *Storage) objectURL(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, url.PathEscape(s.bucket), strings.Join(segments, "/"))
}

func isDuplicate(status int, body string) bool {
	if status == http.StatusConflict {
		return true
	}
	if status != http.StatusBadRequest {
		return false
	}
	lower := strings.ToLower(body)
	return strings.Contains(lower, "duplicate") || strings.Contains(lower, "already exists")
}
