package hazard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"roadcast/internal/apperr"
	"roadcast/internal/forecast"
	"roadcast/internal/types"
)

// listPageSize bounds how many active reports a nearby query scans.
const listPageSize = 500

// Service is the crowd-report trust engine: intake with a weather
// cross-check, peer confirmation and rejection, and proximity queries.
type Service interface {
	Report(ctx context.Context, location types.Coords, category Category) (*Report, error)
	Confirm(ctx context.Context, id string) (*Report, error)
	Reject(ctx context.Context, id string) (*Report, error)
	Nearby(ctx context.Context, center types.Coords, radiusKm float64) ([]Report, error)
}

type hazardService struct {
	store     *Store
	scorer    *Scorer
	forecasts forecast.Service
	minTrust  float64
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates a hazard service with the given store, scorer, and
// forecast service for the intake cross-check.
func NewService(store *Store, scorer *Scorer, forecasts forecast.Service, minTrust float64, logger *slog.Logger) Service {
	return &hazardService{
		store:     store,
		scorer:    scorer,
		forecasts: forecasts,
		minTrust:  minTrust,
		logger:    logger.With("component", "hazard-service"),
		now:       time.Now,
	}
}

// Report ingests a new hazard report. Weather-linked categories are
// cross-checked against the forecast at the report's location before the
// initial trust score is assigned; a failed forecast lookup degrades to a
// neutral score rather than blocking intake.
func (s *hazardService) Report(ctx context.Context, location types.Coords, category Category) (*Report, error) {
	var sample *types.WeatherSample
	if category.WeatherLinked() {
		got, err := s.forecasts.PointForecast(ctx, location, s.now())
		if err != nil {
			s.logger.Warn("weather cross-check unavailable, scoring neutral",
				"category", category, "error", err)
		} else {
			sample = &got
		}
	}

	created, err := s.store.Create(ctx, Report{
		Location:   location,
		Category:   category,
		Status:     StatusPending,
		TrustScore: s.scorer.InitialScore(category, sample),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("hazard report created",
		"id", created.ID,
		"category", created.Category,
		"trustScore", created.TrustScore)
	return created, nil
}

// Confirm records a peer confirmation and returns the updated report.
func (s *hazardService) Confirm(ctx context.Context, id string) (*Report, error) {
	return s.applyFeedback(ctx, id, s.scorer.Confirm)
}

// Reject records a peer rejection and returns the updated report.
func (s *hazardService) Reject(ctx context.Context, id string) (*Report, error) {
	return s.applyFeedback(ctx, id, s.scorer.Reject)
}

// Nearby returns unexpired reports within radiusKm of center whose trust
// score clears the service's minimum, soonest-expiring first.
func (s *hazardService) Nearby(ctx context.Context, center types.Coords, radiusKm float64) ([]Report, error) {
	reports, err := s.store.ListActive(ctx, listPageSize)
	if err != nil {
		return nil, err
	}
	return FilterNearby(reports, center, radiusKm, s.minTrust, s.now()), nil
}

// applyFeedback runs one scorer transition inside the store's transaction.
// Feedback on a report whose TTL has already lapsed is rejected even if the
// sweep has not rewritten its status yet.
func (s *hazardService) applyFeedback(ctx context.Context, id string, transition func(*Report) error) (*Report, error) {
	r, err := s.store.Apply(ctx, id, func(r *Report) error {
		if r.Expired(s.now()) {
			return fmt.Errorf("report %s has expired: %w", id, apperr.ErrConflict)
		}
		return transition(r)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("hazard report scored",
		"id", r.ID,
		"status", r.Status,
		"trustScore", r.TrustScore,
		"confirmations", r.Confirmations)
	return r, nil
}

// StartExpirySweep schedules a periodic pass that rewrites the status of
// reports past their TTL. The returned cron is already running; stop it on
// shutdown.
func StartExpirySweep(store *Store, schedule string, logger *slog.Logger) (*cron.Cron, error) {
	sweeper := cron.New()
	log := logger.With("component", "hazard-sweep")

	_, err := sweeper.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		n, err := store.MarkExpired(ctx)
		if err != nil {
			log.Error("expiry sweep failed", "error", err)
			return
		}
		if n > 0 {
			log.Info("expired hazard reports", "count", n)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule expiry sweep %q: %w", schedule, err)
	}

	sweeper.Start()
	return sweeper, nil
}
