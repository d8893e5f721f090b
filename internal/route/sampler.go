package route

import "roadcast/internal/types"

// SamplePath reduces a dense polyline to at most count representative
// waypoints. Paths already within the budget are returned unchanged. The
// final point is always emitted even when the stride misses it, so the
// destination is always probed. An empty path yields an empty result.
func SamplePath(path []types.Coords, count int) []types.Coords {
	if count <= 0 || len(path) <= count {
		return path
	}

	stride := len(path) / count
	sampled := make([]types.Coords, 0, count+1)
	for i := 0; i < len(path); i += stride {
		sampled = append(sampled, path[i])
	}

	last := path[len(path)-1]
	if sampled[len(sampled)-1] != last {
		sampled = append(sampled, last)
	}

	return sampled
}
