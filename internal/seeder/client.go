package seeder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a small JSON client for the scoutboard API.
type Client struct {
	baseURL string
	http    *http.Client
}

// StatusResponse is the acknowledgment body returned by write endpoints.
type StatusResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Score    *int64 `json:"score,omitempty"`
	Username string `json:"username,omitempty"`
}

// Ranking is the subset of a /rankings projection the seeder checks.
type Ranking struct {
	TeamNumber   any     `json:"teamNumber"`
	AvgScore     float64 `json:"avgScore"`
	HighestScore int64   `json:"highestScore"`
	Notes        any     `json:"notes"`
	SavedAt      any     `json:"_savedAt"`
}

// Entry is a /leaderboard entry.
type Entry struct {
	Username  string `json:"username"`
	Score     int64  `json:"score"`
	Timestamp string `json:"timestamp"`
}

// NewClient creates a client for baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Health checks that /healthz answers 200.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/healthz", nil)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("healthz: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Post sends body to path and decodes the acknowledgment. The HTTP status
// is returned alongside so callers can count 400s separately.
func (c *Client) Post(ctx context.Context, path string, body any) (int, StatusResponse, error) {
	var ack StatusResponse
	resp, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return 0, ack, err
	}
	defer func() { _ = resp.Body.Close() }()
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return resp.StatusCode, ack, fmt.Errorf("decode %s response: %w", path, err)
	}
	return resp.StatusCode, ack, nil
}

// Rankings fetches GET /rankings.
func (c *Client) Rankings(ctx context.Context) ([]Ranking, error) {
	var out []Ranking
	return out, c.getJSON(ctx, "/rankings", &out)
}

// Leaderboard fetches GET /leaderboard.
func (c *Client) Leaderboard(ctx context.Context) ([]Entry, error) {
	var out []Entry
	return out, c.getJSON(ctx, "/leaderboard", &out)
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal %s body: %w", path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}
