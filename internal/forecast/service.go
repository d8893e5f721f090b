package forecast

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"roadcast/internal/apperr"
	"roadcast/internal/providers/openmeteo"
	"roadcast/internal/types"
)

// hourPrefixLayout truncates an ISO8601 timestamp to hour granularity.
const hourPrefixLayout = "2006-01-02T15"

// HourlyProvider fetches the hourly weather series for a coordinate.
type HourlyProvider interface {
	GetHourlyForecast(ctx context.Context, latitude, longitude float64) (*openmeteo.ForecastAPIResponse, error)
}

// Service resolves a single point-in-time forecast, consulting the cache
// before the provider.
type Service interface {
	PointForecast(ctx context.Context, coord types.Coords, target time.Time) (types.WeatherSample, error)
}

type forecastService struct {
	provider HourlyProvider
	cache    *Cache
	logger   *slog.Logger
}

// NewService creates a forecast service backed by the Open-Meteo client.
func NewService(logger *slog.Logger) Service {
	return NewServiceWithProvider(openmeteo.NewForecastClient(logger), NewCache(), logger)
}

// NewServiceWithProvider creates a forecast service with a custom provider
// and cache. This is useful for testing with mock providers.
func NewServiceWithProvider(provider HourlyProvider, cache *Cache, logger *slog.Logger) Service {
	return &forecastService{
		provider: provider,
		cache:    cache,
		logger:   logger.With("component", "forecast-service"),
	}
}

// PointForecast returns the forecast nearest the target time at the given
// coordinate. A cache hit answers without any network call, which is the
// rate-limiting safeguard for checkpoint-dense evaluations. Failures map to
// apperr.ErrUnavailable; callers treat that as "unknown weather" at the
// point, not as a fatal condition.
func (s *forecastService) PointForecast(ctx context.Context, coord types.Coords, target time.Time) (types.WeatherSample, error) {
	key := NewKey(coord, target)
	if sample, ok := s.cache.Get(key); ok {
		return sample, nil
	}

	resp, err := s.provider.GetHourlyForecast(ctx, coord.Latitude, coord.Longitude)
	if err != nil {
		s.logger.Warn("forecast fetch failed",
			"latitude", coord.Latitude,
			"longitude", coord.Longitude,
			"error", err,
		)
		return types.WeatherSample{}, fmt.Errorf("point forecast: %w", apperr.ErrUnavailable)
	}

	sample, matched, err := resolveSample(resp, target)
	if err != nil {
		s.logger.Warn("forecast series unusable",
			"latitude", coord.Latitude,
			"longitude", coord.Longitude,
			"error", err,
		)
		return types.WeatherSample{}, fmt.Errorf("point forecast: %w", apperr.ErrUnavailable)
	}

	if !matched {
		// Target is outside the provider's horizon; the series start stands
		// in for it. Logged so the approximation is observable.
		s.logger.Warn("no hourly entry for target hour, using series start",
			"target", target.UTC().Format(time.RFC3339),
			"latitude", coord.Latitude,
			"longitude", coord.Longitude,
		)
	}

	// Cache under the request key, not the matched index, so the next probe
	// for the same rounded coordinate and hour hits without a network call.
	s.cache.Put(key, sample)

	return sample, nil
}

// resolveSample scans the hourly series for the first entry whose timestamp
// matches the target to the hour. When no entry matches, the series start is
// used as an approximation and matched is false; targets beyond the
// provider's forecast horizon therefore report the earliest hour rather than
// failing.
func resolveSample(resp *openmeteo.ForecastAPIResponse, target time.Time) (types.WeatherSample, bool, error) {
	hourly := resp.Hourly
	if len(hourly.Time) == 0 {
		return types.WeatherSample{}, false, fmt.Errorf("empty hourly series")
	}

	prefix := target.UTC().Format(hourPrefixLayout)
	index := -1
	for i, ts := range hourly.Time {
		if strings.HasPrefix(ts, prefix) {
			index = i
			break
		}
	}
	matched := index >= 0
	if !matched {
		index = 0
	}

	if index >= len(hourly.WeatherCode) || index >= len(hourly.Temperature2M) {
		return types.WeatherSample{}, matched, fmt.Errorf("hourly series shorter than time axis (index %d)", index)
	}

	sample := types.WeatherSample{
		Code:         hourly.WeatherCode[index],
		TemperatureC: hourly.Temperature2M[index],
	}
	if index < len(hourly.Precipitation) {
		sample.PrecipitationMm = hourly.Precipitation[index]
	}
	if t, err := time.Parse(hourPrefixLayout+":04", hourly.Time[index]); err == nil {
		sample.Time = t.UTC()
	} else {
		sample.Time = target.UTC()
	}

	return sample, matched, nil
}
