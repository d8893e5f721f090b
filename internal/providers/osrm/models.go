package osrm

// Response codes returned in the RouteAPIResponse body.
const (
	codeOk      = "Ok"
	codeNoRoute = "NoRoute"
)

// RouteAPIResponse is the OSRM route service payload.
type RouteAPIResponse struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Routes  []Route `json:"routes"`
}

// Route is a single alternative. Geometry is an encoded polyline
// (precision 5) covering the full overview.
type Route struct {
	Geometry string  `json:"geometry"`
	Distance float64 `json:"distance"` // meters
	Duration float64 `json:"duration"` // seconds
	Legs     []Leg   `json:"legs"`
}

type Leg struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
	Steps    []Step  `json:"steps"`
}

type Step struct {
	Name     string   `json:"name"`
	Distance float64  `json:"distance"`
	Duration float64  `json:"duration"`
	Maneuver Maneuver `json:"maneuver"`
}

// Maneuver location is a lon,lat pair.
type Maneuver struct {
	Type     string    `json:"type"`
	Modifier string    `json:"modifier"`
	Location []float64 `json:"location"`
}
