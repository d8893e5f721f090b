package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"roadcast/internal/apperr"
)

// API Docs: https://nominatim.org/release-docs/develop/api/Search/
// Sample request: https://nominatim.openstreetmap.org/search?q=majestic+bangalore&format=json&limit=5
const (
	baseSearchURL = "https://nominatim.openstreetmap.org/search"

	defaultTimeout = 10 * time.Second

	// Nominatim's usage policy allows at most one request per second;
	// we keep a wider margin.
	defaultMinGap = 1200 * time.Millisecond
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger

	// Process-wide pacing for the upstream: callers queue on the mutex and
	// each waits out the remainder of the minimum gap before its request.
	mu       sync.Mutex
	lastCall time.Time
	minGap   time.Duration
}

func NewClient(logger *slog.Logger) *Client {
	return NewClientWithOptions(baseSearchURL, defaultTimeout, defaultMinGap, logger)
}

// NewClientWithOptions creates a client against a specific Nominatim
// instance with explicit pacing, for configured deployments and tests.
func NewClientWithOptions(baseURL string, timeout, minGap time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		logger:     logger.With("component", "nominatim-client"),
		minGap:     minGap,
	}
}

// Search resolves a free-text query to a ranked list of candidate places.
// An empty result set maps to apperr.ErrNotFound.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	c.waitForSlot()

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "5")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("failed to fetch search results", "query", query, "error", err)
		return nil, fmt.Errorf("failed to fetch: %w", apperr.ErrUnavailable)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("search API returned error",
			"status_code", resp.StatusCode,
			"response_body", string(body),
		)
		return nil, fmt.Errorf("fetch returned status %d: %w", resp.StatusCode, apperr.ErrUnavailable)
	}

	var results []SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		c.logger.Error("failed to decode search response", "error", err)
		return nil, fmt.Errorf("failed to decode response: %w", apperr.ErrMalformed)
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("no match for %q: %w", query, apperr.ErrNotFound)
	}

	return results, nil
}

// waitForSlot blocks the caller until the minimum gap since the previous
// request has elapsed. The mutex is held through the sleep so concurrent
// callers are released one gap apart.
func (c *Client) waitForSlot() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elapsed := time.Since(c.lastCall); elapsed < c.minGap {
		time.Sleep(c.minGap - elapsed)
	}
	c.lastCall = time.Now()
}
