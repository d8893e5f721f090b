package osrm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"roadcast/internal/apperr"
	"roadcast/internal/types"
)

// API Docs: https://project-osrm.org/docs/v5.24.0/api/
// Sample request: https://router.project-osrm.org/route/v1/driving/77.5946,12.9716;77.7500,13.0000?alternatives=true&steps=true&overview=full
const (
	baseRouteURL = "https://router.project-osrm.org"

	defaultTimeout = 15 * time.Second
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

func NewClient(logger *slog.Logger) *Client {
	return NewClientWithOptions(baseRouteURL, defaultTimeout, logger)
}

// NewClientWithOptions creates a client against a specific router instance,
// for configured deployments and tests.
func NewClientWithOptions(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		logger:     logger.With("component", "osrm-client"),
	}
}

// GetRoutes fetches driving routes between origin and destination, with
// alternatives and turn-by-turn steps. A response with zero routes is valid
// and mapped to apperr.ErrNotFound: the points are not connected by road,
// which is distinct from a transport failure.
func (c *Client) GetRoutes(ctx context.Context, origin, destination types.Coords) (*RouteAPIResponse, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	// OSRM takes coordinates as lon,lat pairs
	u.Path = fmt.Sprintf("/route/v1/driving/%f,%f;%f,%f",
		origin.Longitude, origin.Latitude,
		destination.Longitude, destination.Latitude,
	)

	q := u.Query()
	q.Set("alternatives", "true")
	q.Set("steps", "true")
	q.Set("overview", "full")
	q.Set("geometries", "polyline")
	u.RawQuery = q.Encode()

	c.logger.Debug("fetching routes", "url", u.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("failed to fetch routes", "error", err)
		return nil, fmt.Errorf("failed to fetch: %w", apperr.ErrUnavailable)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	// OSRM reports NoRoute with a 400; decode the body before deciding
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusBadRequest {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("routing API returned error",
			"status_code", resp.StatusCode,
			"response_body", string(body),
		)
		return nil, fmt.Errorf("fetch returned status %d: %w", resp.StatusCode, apperr.ErrUnavailable)
	}

	var apiResp RouteAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		c.logger.Error("failed to decode routing response", "error", err)
		return nil, fmt.Errorf("failed to decode response: %w", apperr.ErrMalformed)
	}

	if apiResp.Code == codeNoRoute || (apiResp.Code == codeOk && len(apiResp.Routes) == 0) {
		c.logger.Info("no route between points",
			"origin_lat", origin.Latitude,
			"origin_lon", origin.Longitude,
			"destination_lat", destination.Latitude,
			"destination_lon", destination.Longitude,
		)
		return nil, fmt.Errorf("no route between points: %w", apperr.ErrNotFound)
	}

	if apiResp.Code != codeOk {
		c.logger.Error("routing API rejected request", "code", apiResp.Code, "message", apiResp.Message)
		return nil, fmt.Errorf("routing request failed with code %q: %w", apiResp.Code, apperr.ErrUnavailable)
	}

	c.logger.Debug("successfully fetched routes", "route_count", len(apiResp.Routes))

	return &apiResp, nil
}
