package types

import "time"

// WeatherSample is a point-in-time forecast at a single coordinate.
// Samples are ephemeral: they are created per evaluation and never persisted.
type WeatherSample struct {
	Code            int       `json:"code"`
	TemperatureC    float64   `json:"temperature_c"`
	PrecipitationMm float64   `json:"precipitation_mm"`
	Time            time.Time `json:"time"`
}
