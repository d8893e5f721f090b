package openmeteo

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
)

// API Docs: https://open-meteo.com/en/docs
// Sample request: https://api.open-meteo.com/v1/forecast?latitude=39.11&longitude=-107.65&hourly=weather_code,temperature_2m,precipitation&timezone=GMT&timeformat=iso8601
const (
	baseForecastURL = "https://api.open-meteo.com/v1/forecast"

	defaultTimeout = 10 * time.Second
)

type ForecastClient struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

func NewForecastClient(logger *slog.Logger) *ForecastClient {
	return NewForecastClientWithOptions(baseForecastURL, defaultTimeout, logger)
}

// NewForecastClientWithOptions creates a client against a specific forecast
// endpoint, for configured deployments and tests.
func NewForecastClientWithOptions(baseURL string, timeout time.Duration, logger *slog.Logger) *ForecastClient {
	return &ForecastClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		logger:     logger.With("component", "openmeteo-client"),
	}
}

// GetHourlyForecast fetches the hourly weather series for the given
// coordinate. Timestamps in the response are UTC with hour granularity.
func (c *ForecastClient) GetHourlyForecast(ctx context.Context, latitude, longitude float64) (*ForecastAPIResponse, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("latitude", fmt.Sprintf("%f", latitude))
	q.Set("longitude", fmt.Sprintf("%f", longitude))
	q.Set("hourly", "weather_code,temperature_2m,precipitation")
	q.Set("timezone", "GMT")
	q.Set("timeformat", "iso8601")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("failed to fetch forecast", "error", err)
		return nil, fmt.Errorf("failed to fetch: %w", apperr.ErrUnavailable)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("forecast API returned error",
			"status_code", resp.StatusCode,
			"response_body", string(body),
		)
		return nil, fmt.Errorf("fetch returned status %d: %w", resp.StatusCode, apperr.ErrUnavailable)
	}

	var apiResp ForecastAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		c.logger.Error("failed to decode forecast response", "error", err)
		return nil, fmt.Errorf("failed to decode response: %w", apperr.ErrMalformed)
	}

	return &apiResp, nil
}
