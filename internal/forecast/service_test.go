package forecast

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"roadcast/internal/apperr"
	"roadcast/internal/providers/openmeteo"
	"roadcast/internal/types"
)

type mockHourlyProvider struct {
	resp  *openmeteo.ForecastAPIResponse
	err   error
	calls int
}

func (m *mockHourlyProvider) GetHourlyForecast(ctx context.Context, latitude, longitude float64) (*openmeteo.ForecastAPIResponse, error) {
	m.calls++
	return m.resp, m.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func hourlyResponse() *openmeteo.ForecastAPIResponse {
	resp := &openmeteo.ForecastAPIResponse{}
	resp.Hourly.Time = []string{"2026-06-15T14:00", "2026-06-15T15:00", "2026-06-15T16:00"}
	resp.Hourly.WeatherCode = []int{0, 61, 95}
	resp.Hourly.Temperature2M = []float64{28.0, 24.5, 22.1}
	resp.Hourly.Precipitation = []float64{0, 1.2, 8.4}
	return resp
}

func TestPointForecast_MatchesTargetHour(t *testing.T) {
	provider := &mockHourlyProvider{resp: hourlyResponse()}
	svc := NewServiceWithProvider(provider, NewCache(), testLogger())

	target := time.Date(2026, 6, 15, 15, 40, 0, 0, time.UTC)
	sample, err := svc.PointForecast(context.Background(), types.NewCoords(12.97, 77.59), target)
	if err != nil {
		t.Fatalf("PointForecast failed: %v", err)
	}

	if sample.Code != 61 {
		t.Errorf("sample code = %d, want 61", sample.Code)
	}
	if sample.TemperatureC != 24.5 {
		t.Errorf("sample temperature = %v, want 24.5", sample.TemperatureC)
	}
	if sample.PrecipitationMm != 1.2 {
		t.Errorf("sample precipitation = %v, want 1.2", sample.PrecipitationMm)
	}
}

func TestPointForecast_CacheHitSkipsProvider(t *testing.T) {
	provider := &mockHourlyProvider{resp: hourlyResponse()}
	svc := NewServiceWithProvider(provider, NewCache(), testLogger())

	target := time.Date(2026, 6, 15, 15, 0, 0, 0, time.UTC)
	coord := types.NewCoords(12.97161, 77.59462)

	if _, err := svc.PointForecast(context.Background(), coord, target); err != nil {
		t.Fatalf("first fetch failed: %v", err)
	}
	if provider.calls != 1 {
		t.Fatalf("provider calls after first fetch = %d, want 1", provider.calls)
	}

	// Same rounded coordinate and hour must answer from the cache.
	nearby := types.NewCoords(12.96800, 77.59100)
	sample, err := svc.PointForecast(context.Background(), nearby, target.Add(20*time.Minute))
	if err != nil {
		t.Fatalf("second fetch failed: %v", err)
	}
	if provider.calls != 1 {
		t.Errorf("provider calls after cached fetch = %d, want 1", provider.calls)
	}
	if sample.Code != 61 {
		t.Errorf("cached sample code = %d, want 61", sample.Code)
	}
}

func TestPointForecast_HorizonFallbackUsesSeriesStart(t *testing.T) {
	provider := &mockHourlyProvider{resp: hourlyResponse()}
	svc := NewServiceWithProvider(provider, NewCache(), testLogger())

	// No entry for 03:00; the series start stands in.
	target := time.Date(2026, 6, 17, 3, 0, 0, 0, time.UTC)
	sample, err := svc.PointForecast(context.Background(), types.NewCoords(12.97, 77.59), target)
	if err != nil {
		t.Fatalf("PointForecast failed: %v", err)
	}
	if sample.Code != 0 {
		t.Errorf("fallback sample code = %d, want 0 (series start)", sample.Code)
	}
	if sample.TemperatureC != 28.0 {
		t.Errorf("fallback sample temperature = %v, want 28.0", sample.TemperatureC)
	}
}

func TestPointForecast_ProviderErrorIsUnavailable(t *testing.T) {
	provider := &mockHourlyProvider{err: errors.New("connection refused")}
	svc := NewServiceWithProvider(provider, NewCache(), testLogger())

	_, err := svc.PointForecast(context.Background(), types.NewCoords(12.97, 77.59), time.Now())
	if !errors.Is(err, apperr.ErrUnavailable) {
		t.Errorf("error = %v, want apperr.ErrUnavailable", err)
	}
}

func TestPointForecast_EmptySeriesIsUnavailable(t *testing.T) {
	provider := &mockHourlyProvider{resp: &openmeteo.ForecastAPIResponse{}}
	svc := NewServiceWithProvider(provider, NewCache(), testLogger())

	_, err := svc.PointForecast(context.Background(), types.NewCoords(12.97, 77.59), time.Now())
	if !errors.Is(err, apperr.ErrUnavailable) {
		t.Errorf("error = %v, want apperr.ErrUnavailable", err)
	}
}

func TestPointForecast_ShortValueArraysAreUnavailable(t *testing.T) {
	resp := hourlyResponse()
	resp.Hourly.WeatherCode = resp.Hourly.WeatherCode[:1]
	provider := &mockHourlyProvider{resp: resp}
	svc := NewServiceWithProvider(provider, NewCache(), testLogger())

	target := time.Date(2026, 6, 15, 16, 0, 0, 0, time.UTC)
	_, err := svc.PointForecast(context.Background(), types.NewCoords(12.97, 77.59), target)
	if !errors.Is(err, apperr.ErrUnavailable) {
		t.Errorf("error = %v, want apperr.ErrUnavailable", err)
	}
}
