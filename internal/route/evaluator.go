package route

import (
	"context"
	"log/slog"
	"time"

	"roadcast/internal/forecast"
	"roadcast/internal/risk"
	"roadcast/internal/types"
)

// Evaluator annotates a route candidate with its weather risk by probing the
// forecast at sampled checkpoints along the path.
type Evaluator struct {
	forecasts   forecast.Service
	sampleCount int
	logger      *slog.Logger
	now         func() time.Time
}

func NewEvaluator(forecasts forecast.Service, sampleCount int, logger *slog.Logger) *Evaluator {
	return &Evaluator{
		forecasts:   forecasts,
		sampleCount: sampleCount,
		logger:      logger.With("component", "route-evaluator"),
		now:         time.Now,
	}
}

// Evaluate projects an arrival time onto each checkpoint from the route's
// own duration, fetches the forecast there, and records an alert for every
// hazardous code. Checkpoints are probed sequentially and deterministically;
// a failed fetch skips that checkpoint rather than aborting the route, so a
// route is never discarded just because one forecast call failed.
func (e *Evaluator) Evaluate(ctx context.Context, candidate types.RouteCandidate) types.AnalyzedRoute {
	checkpoints := SamplePath(candidate.Path, e.sampleCount)
	departure := e.now()

	analyzed := types.AnalyzedRoute{
		Route:     candidate,
		RiskLevel: types.RiskSafe,
	}

	n := len(checkpoints)
	for i, checkpoint := range checkpoints {
		progress := 0.0
		if n > 1 {
			progress = float64(i) / float64(n-1)
		}
		eta := candidate.DurationSeconds * progress
		arrival := departure.Add(time.Duration(eta * float64(time.Second)))

		sample, err := e.forecasts.PointForecast(ctx, checkpoint, arrival)
		if err != nil {
			e.logger.Debug("skipping checkpoint, forecast unavailable",
				"checkpoint", i,
				"latitude", checkpoint.Latitude,
				"longitude", checkpoint.Longitude,
				"error", err,
			)
			continue
		}

		if risk.IsHazardousCode(sample.Code) {
			analyzed.IsHazardous = true
			analyzed.RiskLevel = types.RiskHigh
			analyzed.Alerts = append(analyzed.Alerts, types.RouteAlert{
				Location:     checkpoint,
				Description:  risk.Describe(sample.Code),
				Code:         sample.Code,
				TemperatureC: sample.TemperatureC,
				ArrivalTime:  arrival,
			})
		}
	}

	return analyzed
}
