// Package client fetches stories from the science-fiction story API.
// Every call is a fresh request: no retries and no caching.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/robertguss/scifi-stories-go/internal/config"
	"github.com/robertguss/scifi-stories-go/internal/domain"
)

// Error kinds reported by the client. Match with errors.Is.
var (
	ErrNetwork  = errors.New("network error")
	ErrFormat   = errors.New("unexpected payload format")
	ErrNotFound = errors.New("story not found")
)

const (
	storiesPath     = "/api/sciencefiction"
	requestIDHeader = "X-Request-ID"
	userAgent       = "scifi-stories-go/1.0"
	maxBodyBytes    = 16 << 20
)

// Repository is the read side of the story API
type Repository interface {
	FetchAll(ctx context.Context) ([]domain.Story, error)
	FetchOne(ctx context.Context, id string) (domain.Story, error)
}

// Client implements Repository over HTTP
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
	maxBody int64
}

// New creates a client for the API at baseURL. A nil httpClient means
// http.DefaultClient; a nil logger discards.
func New(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
		maxBody: maxBodyBytes,
	}
}

// NewFromConfig creates a client using the configured base URL and timeout
func NewFromConfig(cfg *config.Config, logger *slog.Logger) *Client {
	return New(cfg.APIBaseURL, &http.Client{Timeout: cfg.RequestTimeout}, logger)
}

// FetchAll issues one GET to the list endpoint.
//
// A body that is not a JSON array fails with ErrFormat; callers treat that
// as an empty collection. Array elements that cannot be decoded are skipped.
func (c *Client) FetchAll(ctx context.Context) ([]domain.Story, error) {
	body, err := c.get(ctx, c.baseURL+storiesPath)
	if err != nil {
		return nil, err
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: expected an array of stories: %v", ErrFormat, err)
	}

	stories := make([]domain.Story, 0, len(raw))
	for i, item := range raw {
		var s domain.Story
		if err := json.Unmarshal(item, &s); err != nil {
			c.logger.Warn("skipping undecodable story", "index", i, "err", err)
			continue
		}
		if s.Image.IsEmpty() {
			c.logger.Warn("story is missing image", "index", i, "story_id", s.ID)
		}
		stories = append(stories, s)
	}

	c.logger.Info("stories fetched", "count", len(stories))
	return stories, nil
}

// FetchOne issues one GET to the item endpoint for id.
// An empty or null body means the story does not exist.
func (c *Client) FetchOne(ctx context.Context, id string) (domain.Story, error) {
	body, err := c.get(ctx, c.baseURL+storiesPath+"/"+url.PathEscape(id))
	if err != nil {
		return domain.Story{}, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return domain.Story{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	var s domain.Story
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return domain.Story{}, fmt.Errorf("%w: expected a story object: %v", ErrFormat, err)
	}
	if s.IsZero() {
		return domain.Story{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if s.Image.IsEmpty() {
		c.logger.Warn("story is missing image", "story_id", s.ID)
	}

	return s, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build request: %v", ErrNetwork, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(requestIDHeader, requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("request failed", "url", endpoint, "request_id", requestID, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request completed",
		"url", endpoint,
		"request_id", requestID,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: unexpected status %d from %s", ErrNetwork, resp.StatusCode, endpoint)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", ErrNetwork, err)
	}
	if int64(len(body)) > c.maxBody {
		c.logger.Error("response too large", "url", endpoint, "request_id", requestID, "limit", c.maxBody)
		return nil, fmt.Errorf("%w: response from %s exceeds %d bytes", ErrNetwork, endpoint, c.maxBody)
	}
	return body, nil
}

// Kind returns a short name for the error kind, used in logs and UI
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrFormat):
		return "format"
	case errors.Is(err, ErrNetwork):
		return "network"
	default:
		return "unknown"
	}
}
