package hazard

import (
	"sort"
	"time"

	"roadcast/internal/spatial"
	"roadcast/internal/types"
)

// FilterNearby returns the reports within radiusKm of center whose trust
// score clears minTrust and which have not expired as of now. Results are
// ordered soonest-expiring first so the most perishable hazards surface at
// the top of a bounded page.
func FilterNearby(reports []Report, center types.Coords, radiusKm, minTrust float64, now time.Time) []Report {
	var out []Report
	for _, r := range reports {
		if r.Expired(now) {
			continue
		}
		if r.TrustScore < minTrust {
			continue
		}
		if spatial.DistanceKm(center, r.Location) > radiusKm {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ExpiresAt.Before(out[j].ExpiresAt)
	})
	return out
}
