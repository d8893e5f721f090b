package route

import (
	"sort"

	"roadcast/internal/types"
)

// Rank orders evaluated routes safety first, then ascending duration. The
// sort is stable and lexicographic: a small time saving never outranks an
// elevated risk classification.
func Rank(routes []types.AnalyzedRoute) []types.AnalyzedRoute {
	ranked := make([]types.AnalyzedRoute, len(routes))
	copy(ranked, routes)

	sort.SliceStable(ranked, func(i, j int) bool {
		safeI := ranked[i].RiskLevel == types.RiskSafe
		safeJ := ranked[j].RiskLevel == types.RiskSafe
		if safeI != safeJ {
			return safeI
		}
		return ranked[i].Route.DurationSeconds < ranked[j].Route.DurationSeconds
	})

	return ranked
}
