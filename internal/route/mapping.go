package route

import (
	"fmt"

	"github.com/twpayne/go-polyline"

	"roadcast/internal/apperr"
	"roadcast/internal/providers/osrm"
	"roadcast/internal/types"
)

// mapRouteAPIResponse translates an OSRM route response into provider-
// agnostic RouteCandidate values. Candidates with undecodable geometry make
// the whole response unusable: a route that cannot be placed on the map
// cannot be ranked.
func mapRouteAPIResponse(resp *osrm.RouteAPIResponse) ([]types.RouteCandidate, error) {
	candidates := make([]types.RouteCandidate, 0, len(resp.Routes))
	for _, r := range resp.Routes {
		coords, _, err := polyline.DecodeCoords([]byte(r.Geometry))
		if err != nil {
			return nil, fmt.Errorf("failed to decode route geometry: %w", apperr.ErrMalformed)
		}

		path := make([]types.Coords, 0, len(coords))
		for _, c := range coords {
			if len(c) < 2 {
				continue
			}
			path = append(path, types.NewCoords(c[0], c[1]))
		}

		candidates = append(candidates, types.RouteCandidate{
			Path:            path,
			DistanceMeters:  r.Distance,
			DurationSeconds: r.Duration,
			Steps:           mapSteps(r.Legs),
		})
	}
	return candidates, nil
}

// mapSteps flattens the per-leg turn instructions of one route.
func mapSteps(legs []osrm.Leg) []types.NavigationStep {
	var steps []types.NavigationStep
	for _, leg := range legs {
		for _, s := range leg.Steps {
			kind := mapManeuver(s.Maneuver.Type, s.Maneuver.Modifier)
			steps = append(steps, types.NavigationStep{
				Instruction:    instructionText(kind, s.Name),
				Maneuver:       kind,
				DistanceMeters: s.Distance,
				Location:       maneuverLocation(s.Maneuver.Location),
			})
		}
	}
	return steps
}

// mapManeuver narrows the OSRM maneuver taxonomy to the closed ManeuverKind
// set. Missing or malformed data falls back to continue.
func mapManeuver(maneuverType, modifier string) types.ManeuverKind {
	switch maneuverType {
	case "", "depart", "continue", "new name":
		return types.ManeuverContinue
	case "turn", "end of road", "fork":
		switch modifier {
		case "left", "slight left", "sharp left":
			return types.ManeuverTurnLeft
		case "right", "slight right", "sharp right":
			return types.ManeuverTurnRight
		default:
			return types.ManeuverContinue
		}
	case "merge", "on ramp", "off ramp":
		return types.ManeuverMerge
	case "arrive":
		return types.ManeuverArrive
	default:
		return types.ManeuverOther
	}
}

func maneuverLocation(lonLat []float64) types.Coords {
	if len(lonLat) < 2 {
		return types.Coords{}
	}
	// OSRM maneuver locations are lon,lat pairs
	return types.NewCoords(lonLat[1], lonLat[0])
}

func instructionText(kind types.ManeuverKind, roadName string) string {
	if roadName == "" {
		roadName = "the road"
	}
	switch kind {
	case types.ManeuverTurnLeft:
		return fmt.Sprintf("Turn left onto %s", roadName)
	case types.ManeuverTurnRight:
		return fmt.Sprintf("Turn right onto %s", roadName)
	case types.ManeuverMerge:
		return fmt.Sprintf("Merge onto %s", roadName)
	case types.ManeuverArrive:
		return "Arrive at destination"
	case types.ManeuverOther:
		return fmt.Sprintf("Follow %s", roadName)
	default:
		return fmt.Sprintf("Continue on %s", roadName)
	}
}
