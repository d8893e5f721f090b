package route

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"roadcast/internal/forecast"
	"roadcast/internal/providers/osrm"
	"roadcast/internal/types"
)

// ErrSuperseded is returned when the caller abandoned an analysis, either by
// starting a newer one in the same session or by cancelling the request
// context; the stale result is discarded, not surfaced.
var ErrSuperseded = errors.New("route analysis superseded by a newer request")

// RoutingProvider fetches route alternatives between two coordinates.
type RoutingProvider interface {
	GetRoutes(ctx context.Context, origin, destination types.Coords) (*osrm.RouteAPIResponse, error)
}

// Planner resolves, evaluates, and ranks route alternatives. The session
// identifies one caller: a newer Analyze call with the same session
// supersedes an older in-flight one, while different sessions never affect
// each other. An empty session opts out of supersede tracking.
type Planner interface {
	Analyze(ctx context.Context, session string, origin, destination types.Coords) ([]types.AnalyzedRoute, error)
}

type planner struct {
	routing   RoutingProvider
	evaluator *Evaluator
	logger    *slog.Logger

	// Monotonic request token per session; results from earlier
	// generations of the same session are dropped.
	mu          sync.Mutex
	generations map[string]uint64
}

// NewPlanner creates a planner backed by the public OSRM router.
func NewPlanner(forecasts forecast.Service, sampleCount int, logger *slog.Logger) Planner {
	return NewPlannerWithProviders(osrm.NewClient(logger), NewEvaluator(forecasts, sampleCount, logger), logger)
}

// NewPlannerWithProviders creates a planner with custom collaborators.
// This is useful for testing with mock providers.
func NewPlannerWithProviders(routing RoutingProvider, evaluator *Evaluator, logger *slog.Logger) Planner {
	return &planner{
		routing:     routing,
		evaluator:   evaluator,
		logger:      logger.With("component", "route-planner"),
		generations: make(map[string]uint64),
	}
}

// Analyze fetches routing alternatives, evaluates them concurrently, and
// returns them ranked. Zero routes propagates the provider's not-found error
// so callers can tell "unreachable by road" apart from transport failures.
// In-flight forecast fetches belonging to an abandoned request are allowed
// to finish, but their results are discarded: a cancelled context or a newer
// generation from the same session yields ErrSuperseded.
func (p *planner) Analyze(ctx context.Context, session string, origin, destination types.Coords) ([]types.AnalyzedRoute, error) {
	gen := p.begin(session)

	resp, err := p.routing.GetRoutes(ctx, origin, destination)
	if err != nil {
		return nil, err
	}

	candidates, err := mapRouteAPIResponse(resp)
	if err != nil {
		return nil, err
	}

	// Evaluate alternatives in parallel; within each route the checkpoint
	// loop stays sequential.
	analyzed := make([]types.AnalyzedRoute, len(candidates))
	var wg sync.WaitGroup
	for i, candidate := range candidates {
		wg.Add(1)
		go func(i int, candidate types.RouteCandidate) {
			defer wg.Done()
			analyzed[i] = p.evaluator.Evaluate(ctx, candidate)
		}(i, candidate)
	}
	wg.Wait()

	if ctx.Err() != nil {
		p.logger.Debug("discarding analysis for abandoned request", "session", session)
		return nil, ErrSuperseded
	}
	if p.superseded(session, gen) {
		p.logger.Debug("discarding stale route analysis", "session", session, "generation", gen)
		return nil, ErrSuperseded
	}

	ranked := Rank(analyzed)

	p.logger.Info("route analysis complete",
		"session", session,
		"alternatives", len(ranked),
		"hazardous", countHazardous(ranked),
	)

	return ranked, nil
}

func (p *planner) begin(session string) uint64 {
	if session == "" {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.generations[session]++
	return p.generations[session]
}

func (p *planner) superseded(session string, gen uint64) bool {
	if session == "" {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.generations[session] != gen
}

func countHazardous(routes []types.AnalyzedRoute) int {
	n := 0
	for _, r := range routes {
		if r.IsHazardous {
			n++
		}
	}
	return n
}
