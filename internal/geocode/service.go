package geocode

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"roadcast/internal/providers/nominatim"
	"roadcast/internal/types"
)

// Suggestion is one resolved candidate for a free-text query.
type Suggestion struct {
	DisplayName string       `json:"display_name"`
	Location    types.Coords `json:"location"`
}

// SearchProvider resolves free text to ranked place candidates.
type SearchProvider interface {
	Search(ctx context.Context, query string) ([]nominatim.SearchResult, error)
}

// Service resolves free-text queries to coordinates, memoizing results so
// repeated lookups skip the rate-limited upstream.
type Service interface {
	Suggest(ctx context.Context, query string) ([]Suggestion, error)
}

type geocodeService struct {
	provider SearchProvider
	logger   *slog.Logger

	mu    sync.RWMutex
	cache map[string][]Suggestion
}

// NewService creates a geocode service backed by the Nominatim client.
func NewService(logger *slog.Logger) Service {
	return NewServiceWithProvider(nominatim.NewClient(logger), logger)
}

// NewServiceWithProvider creates a geocode service with a custom provider.
// This is useful for testing with mock providers.
func NewServiceWithProvider(provider SearchProvider, logger *slog.Logger) Service {
	return &geocodeService{
		provider: provider,
		logger:   logger.With("component", "geocode-service"),
		cache:    make(map[string][]Suggestion),
	}
}

// Suggest returns ranked candidates for the query. Candidates with
// unparseable coordinates are dropped rather than surfaced as zero values.
func (s *geocodeService) Suggest(ctx context.Context, query string) ([]Suggestion, error) {
	s.mu.RLock()
	cached, ok := s.cache[query]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	results, err := s.provider.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", query, err)
	}

	suggestions := make([]Suggestion, 0, len(results))
	for _, r := range results {
		lat, latErr := strconv.ParseFloat(r.Lat, 64)
		lon, lonErr := strconv.ParseFloat(r.Lon, 64)
		if latErr != nil || lonErr != nil {
			s.logger.Warn("dropping candidate with unparseable coordinates",
				"display_name", r.DisplayName,
				"lat", r.Lat,
				"lon", r.Lon,
			)
			continue
		}
		suggestions = append(suggestions, Suggestion{
			DisplayName: r.DisplayName,
			Location:    types.NewCoords(lat, lon),
		})
	}

	s.mu.Lock()
	s.cache[query] = suggestions
	s.mu.Unlock()

	return suggestions, nil
}
