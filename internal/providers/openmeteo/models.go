package openmeteo

// ForecastAPIResponse is the hourly forecast payload from the Open-Meteo
// forecast endpoint. The three parallel arrays under Hourly share the Time
// index; short or missing arrays are tolerated by callers.
type ForecastAPIResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Hourly    struct {
		Time          []string  `json:"time"`
		WeatherCode   []int     `json:"weather_code"`
		Temperature2M []float64 `json:"temperature_2m"`
		Precipitation []float64 `json:"precipitation"`
	} `json:"hourly"`
}
