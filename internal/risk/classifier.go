// Package risk classifies WMO weather codes for driving exposure. Both
// functions are pure and total over all integer inputs.
package risk

// IsHazardousCode reports whether a weather code sits in the drizzle, rain,
// shower, or thunderstorm bands.
func IsHazardousCode(code int) bool {
	switch {
	case code >= 51 && code <= 67:
		return true
	case code >= 80 && code <= 82:
		return true
	case code >= 95 && code <= 99:
		return true
	default:
		return false
	}
}

// Describe maps a weather code to a human-readable band label. Out-of-range
// codes return "Unknown".
func Describe(code int) string {
	switch {
	case code == 0 || code == 1:
		return "Clear"
	case code == 2 || code == 3:
		return "Cloudy"
	case code == 45 || code == 48:
		return "Fog"
	case code >= 51 && code <= 55:
		return "Drizzle"
	case code == 56 || code == 57:
		return "Freezing drizzle"
	case code >= 61 && code <= 65:
		return "Rain"
	case code == 66 || code == 67:
		return "Freezing rain"
	case code >= 71 && code <= 77:
		return "Snow"
	case code >= 80 && code <= 82:
		return "Heavy showers"
	case code == 85 || code == 86:
		return "Snow showers"
	case code >= 95 && code <= 99:
		return "Thunderstorm"
	default:
		return "Unknown"
	}
}
