package hazard

import (
	"fmt"

	"roadcast/internal/apperr"
	"roadcast/internal/risk"
	"roadcast/internal/types"
)

// ScorerConfig carries the trust-model tuning. The values are configuration,
// not structure; defaults match the deployed model.
type ScorerConfig struct {
	ConfirmIncrement  float64
	RejectDecrement   float64
	ConfirmThreshold  int
	LowTrustThreshold float64

	// Initial-score anchors.
	NonWeatherBase float64
	Suspicious     float64
	Validated      float64
	Neutral        float64
}

// DefaultScorerConfig returns the deployed trust constants.
func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		ConfirmIncrement:  0.15,
		RejectDecrement:   0.3,
		ConfirmThreshold:  3,
		LowTrustThreshold: 0.3,
		NonWeatherBase:    0.6,
		Suspicious:        0.2,
		Validated:         0.75,
		Neutral:           0.5,
	}
}

// Scorer owns every trust-score and status mutation of a Report. Trust is a
// function of one report's own confirmation, rejection, and weather-
// correlation events; no per-user identity or history is modeled.
type Scorer struct {
	cfg ScorerConfig
}

func NewScorer(cfg ScorerConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// InitialScore computes the trust a fresh report starts with. Weather-linked
// categories are cross-checked against the current forecast at the report's
// location: dry conditions with a benign code depress the score sharply,
// confirmed precipitation raises it, and an ambiguous signal lands on the
// neutral midpoint. When the cross-check sample is unavailable the score
// also stays neutral.
func (s *Scorer) InitialScore(category Category, sample *types.WeatherSample) float64 {
	if !category.WeatherLinked() {
		return s.cfg.NonWeatherBase
	}

	if sample == nil {
		return s.cfg.Neutral
	}

	rainCode := risk.IsHazardousCode(sample.Code)
	switch {
	case sample.PrecipitationMm == 0 && !rainCode:
		return s.cfg.Suspicious
	case rainCode || sample.PrecipitationMm >= 0.5:
		return s.cfg.Validated
	default:
		return s.cfg.Neutral
	}
}

// Confirm applies a peer confirmation: the count goes up, trust rises by the
// fixed increment, and the report is verified once the count reaches the
// threshold. Only pending or disputed reports accept confirmations.
func (s *Scorer) Confirm(r *Report) error {
	if r.Status != StatusPending && r.Status != StatusDisputed {
		return fmt.Errorf("cannot confirm report in status %q: %w", r.Status, apperr.ErrConflict)
	}

	r.Confirmations++
	r.TrustScore = clamp01(r.TrustScore + s.cfg.ConfirmIncrement)
	if r.Confirmations >= s.cfg.ConfirmThreshold {
		r.Status = StatusVerified
	}
	return nil
}

// Reject applies a peer rejection: trust drops by the fixed decrement, and
// the report is rejected outright when it falls below the low-trust
// threshold, or flagged as disputed (still visible) otherwise.
func (s *Scorer) Reject(r *Report) error {
	if r.Status != StatusPending && r.Status != StatusDisputed {
		return fmt.Errorf("cannot reject report in status %q: %w", r.Status, apperr.ErrConflict)
	}

	r.TrustScore = clamp01(r.TrustScore - s.cfg.RejectDecrement)
	if r.TrustScore < s.cfg.LowTrustThreshold {
		r.Status = StatusRejected
	} else {
		r.Status = StatusDisputed
	}
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
