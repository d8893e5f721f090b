package hazard

import (
	"fmt"
	"strings"
	"time"

	"roadcast/internal/types"
)

// Category is the kind of hazard a report claims.
type Category string

const (
	CategoryWaterlogging Category = "waterlogging"
	CategoryAccident     Category = "accident"
	CategoryRoadBlock    Category = "roadblock"
)

// ParseCategory validates a category string.
func ParseCategory(s string) (Category, error) {
	switch Category(strings.ToLower(s)) {
	case CategoryWaterlogging:
		return CategoryWaterlogging, nil
	case CategoryAccident:
		return CategoryAccident, nil
	case CategoryRoadBlock:
		return CategoryRoadBlock, nil
	default:
		return "", fmt.Errorf("unknown hazard category %q", s)
	}
}

// WeatherLinked reports whether the category can be cross-checked against
// forecast data. Accidents and road blocks cannot: no sensor sees them.
func (c Category) WeatherLinked() bool {
	return c == CategoryWaterlogging
}

// Status is the report's position in the trust state machine.
type Status string

const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
	StatusDisputed Status = "disputed"
	StatusRejected Status = "rejected"
	StatusExpired  Status = "expired"
)

// ParseStatus validates a status string.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(s)) {
	case StatusPending, StatusVerified, StatusDisputed, StatusRejected, StatusExpired:
		return Status(strings.ToLower(s)), nil
	default:
		return "", fmt.Errorf("unknown hazard status %q", s)
	}
}

// Report is one crowd-submitted hazard. Trust score and status are the only
// mutable fields, and only the scorer mutates them; expiry is enforced by
// the store's queries, not by in-memory mutation.
type Report struct {
	ID            string       `json:"id"`
	Location      types.Coords `json:"location"`
	Category      Category     `json:"category"`
	Status        Status       `json:"status"`
	TrustScore    float64      `json:"trust_score"`
	Confirmations int          `json:"confirmations"`
	CreatedAt     time.Time    `json:"created_at"`
	ExpiresAt     time.Time    `json:"expires_at"`
}

// Expired reports whether the report's TTL has lapsed at the given time.
func (r *Report) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}
