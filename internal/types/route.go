package types

import "time"

// ManeuverKind is the closed set of turn instructions a route step can carry.
// Provider data that is missing or unrecognized maps to ManeuverContinue.
type ManeuverKind string

const (
	ManeuverContinue  ManeuverKind = "continue"
	ManeuverTurnLeft  ManeuverKind = "turn-left"
	ManeuverTurnRight ManeuverKind = "turn-right"
	ManeuverMerge     ManeuverKind = "merge"
	ManeuverArrive    ManeuverKind = "arrive"
	ManeuverOther     ManeuverKind = "other"
)

// NavigationStep is a single turn instruction along a route.
type NavigationStep struct {
	Instruction    string       `json:"instruction"`
	Maneuver       ManeuverKind `json:"maneuver"`
	DistanceMeters float64      `json:"distance_meters"`
	Location       Coords       `json:"location"`
}

// RouteCandidate is one routing-provider alternative. It is immutable after
// creation; evaluation produces a new AnalyzedRoute rather than mutating it.
type RouteCandidate struct {
	Path            []Coords         `json:"path"`
	DistanceMeters  float64          `json:"distance_meters"`
	DurationSeconds float64          `json:"duration_seconds"`
	Steps           []NavigationStep `json:"steps"`
}

// RiskLevel classifies a route's overall weather exposure.
type RiskLevel string

const (
	RiskSafe RiskLevel = "Safe"
	// RiskMedium is reserved for partial-risk scoring; the current
	// classifier only emits Safe or High.
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// RouteAlert records a hazardous forecast at one checkpoint of a route.
type RouteAlert struct {
	Location     Coords    `json:"location"`
	Description  string    `json:"description"`
	Code         int       `json:"code"`
	TemperatureC float64   `json:"temperature_c"`
	ArrivalTime  time.Time `json:"arrival_time"`
}

// AnalyzedRoute is a RouteCandidate annotated with its weather risk.
type AnalyzedRoute struct {
	Route       RouteCandidate `json:"route"`
	IsHazardous bool           `json:"is_hazardous"`
	RiskLevel   RiskLevel      `json:"risk_level"`
	Alerts      []RouteAlert   `json:"alerts"`
}
