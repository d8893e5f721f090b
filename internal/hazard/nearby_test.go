package hazard

import (
	"testing"
	"time"

	"roadcast/internal/types"
)

func TestFilterNearby(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	center := types.NewCoords(12.9716, 77.5946)

	nearby := func(id string, trust float64, expiresIn time.Duration) Report {
		return Report{
			ID:         id,
			Location:   types.NewCoords(12.9750, 77.5980), // well under a kilometer away
			Category:   CategoryWaterlogging,
			Status:     StatusPending,
			TrustScore: trust,
			ExpiresAt:  now.Add(expiresIn),
		}
	}

	reports := []Report{
		nearby("trusted-late", 0.6, 4*time.Hour),
		nearby("trusted-soon", 0.75, 1*time.Hour),
		nearby("low-trust", 0.35, 2*time.Hour),
		nearby("expired", 0.9, -10*time.Minute),
		{
			ID:         "too-far",
			Location:   types.NewCoords(13.1986, 77.7066), // Devanahalli, ~27km out
			Category:   CategoryAccident,
			Status:     StatusVerified,
			TrustScore: 0.9,
			ExpiresAt:  now.Add(3 * time.Hour),
		},
	}

	got := FilterNearby(reports, center, 5, 0.4, now)

	if len(got) != 2 {
		ids := make([]string, len(got))
		for i, r := range got {
			ids[i] = r.ID
		}
		t.Fatalf("FilterNearby returned %v, want exactly the two trusted nearby reports", ids)
	}

	// Soonest-expiring first.
	if got[0].ID != "trusted-soon" || got[1].ID != "trusted-late" {
		t.Errorf("order = [%s, %s], want [trusted-soon, trusted-late]", got[0].ID, got[1].ID)
	}
}

func TestFilterNearby_TrustBoundaryIsInclusive(t *testing.T) {
	now := time.Now()
	center := types.NewCoords(12.9716, 77.5946)
	reports := []Report{{
		ID:         "at-threshold",
		Location:   center,
		TrustScore: 0.4,
		ExpiresAt:  now.Add(time.Hour),
	}}

	if got := FilterNearby(reports, center, 5, 0.4, now); len(got) != 1 {
		t.Errorf("report at the trust threshold excluded")
	}
}

func TestFilterNearby_Empty(t *testing.T) {
	if got := FilterNearby(nil, types.NewCoords(0, 0), 5, 0.4, time.Now()); len(got) != 0 {
		t.Errorf("FilterNearby(nil) returned %d reports", len(got))
	}
}
