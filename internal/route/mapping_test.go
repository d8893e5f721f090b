package route

import (
	"errors"
	"testing"

	"github.com/twpayne/go-polyline"

	"roadcast/internal/apperr"
	"roadcast/internal/providers/osrm"
	"roadcast/internal/types"
)

func TestMapRouteAPIResponse(t *testing.T) {
	coords := [][]float64{
		{12.9716, 77.5946},
		{12.9800, 77.6100},
		{13.0000, 77.7500},
	}
	geometry := string(polyline.EncodeCoords(coords))

	resp := &osrm.RouteAPIResponse{
		Code: "Ok",
		Routes: []osrm.Route{{
			Geometry: geometry,
			Distance: 18200,
			Duration: 1620,
			Legs: []osrm.Leg{{
				Steps: []osrm.Step{
					{Name: "MG Road", Maneuver: osrm.Maneuver{Type: "depart", Location: []float64{77.5946, 12.9716}}},
					{Name: "Old Madras Road", Maneuver: osrm.Maneuver{Type: "turn", Modifier: "left", Location: []float64{77.6100, 12.9800}}},
					{Maneuver: osrm.Maneuver{Type: "arrive", Location: []float64{77.7500, 13.0000}}},
				},
			}},
		}},
	}

	candidates, err := mapRouteAPIResponse(resp)
	if err != nil {
		t.Fatalf("mapRouteAPIResponse failed: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("candidate count = %d, want 1", len(candidates))
	}

	c := candidates[0]
	if len(c.Path) != 3 {
		t.Fatalf("path length = %d, want 3", len(c.Path))
	}
	// Decoded path points are lat,lon.
	if got, want := c.Path[0], types.NewCoords(12.9716, 77.5946); got != want {
		t.Errorf("path[0] = %+v, want %+v", got, want)
	}
	if c.DurationSeconds != 1620 {
		t.Errorf("duration = %v, want 1620", c.DurationSeconds)
	}

	if len(c.Steps) != 3 {
		t.Fatalf("step count = %d, want 3", len(c.Steps))
	}
	if c.Steps[1].Maneuver != types.ManeuverTurnLeft {
		t.Errorf("steps[1].Maneuver = %q, want turn-left", c.Steps[1].Maneuver)
	}
	if c.Steps[1].Instruction != "Turn left onto Old Madras Road" {
		t.Errorf("steps[1].Instruction = %q", c.Steps[1].Instruction)
	}
	// Maneuver locations arrive lon,lat and must be flipped.
	if got, want := c.Steps[1].Location, types.NewCoords(12.9800, 77.6100); got != want {
		t.Errorf("steps[1].Location = %+v, want %+v", got, want)
	}
	if c.Steps[2].Instruction != "Arrive at destination" {
		t.Errorf("steps[2].Instruction = %q", c.Steps[2].Instruction)
	}
}

func TestMapRouteAPIResponse_BadGeometry(t *testing.T) {
	resp := &osrm.RouteAPIResponse{
		Code:   "Ok",
		Routes: []osrm.Route{{Geometry: "\xff\xfe"}},
	}

	_, err := mapRouteAPIResponse(resp)
	if !errors.Is(err, apperr.ErrMalformed) {
		t.Errorf("error = %v, want apperr.ErrMalformed", err)
	}
}

func TestMapManeuver(t *testing.T) {
	tests := []struct {
		maneuverType string
		modifier     string
		expected     types.ManeuverKind
	}{
		{"", "", types.ManeuverContinue},
		{"depart", "", types.ManeuverContinue},
		{"turn", "left", types.ManeuverTurnLeft},
		{"turn", "sharp right", types.ManeuverTurnRight},
		{"turn", "uturn", types.ManeuverContinue},
		{"end of road", "right", types.ManeuverTurnRight},
		{"merge", "slight left", types.ManeuverMerge},
		{"on ramp", "", types.ManeuverMerge},
		{"arrive", "", types.ManeuverArrive},
		{"roundabout", "", types.ManeuverOther},
	}

	for _, tt := range tests {
		t.Run(tt.maneuverType+"/"+tt.modifier, func(t *testing.T) {
			if got := mapManeuver(tt.maneuverType, tt.modifier); got != tt.expected {
				t.Errorf("mapManeuver(%q, %q) = %q, want %q", tt.maneuverType, tt.modifier, got, tt.expected)
			}
		})
	}
}
