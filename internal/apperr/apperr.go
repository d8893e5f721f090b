// Package apperr defines the error taxonomy shared by provider clients and
// services. Callers branch on these sentinels with errors.Is.
package apperr

import "errors"

var (
	// ErrUnavailable covers network failures, timeouts, and non-success
	// statuses from any provider. Retryable.
	ErrUnavailable = errors.New("provider unavailable")

	// ErrNotFound means the provider answered with zero results: geocoding
	// with no match, or a routing request with no road connection.
	ErrNotFound = errors.New("no results")

	// ErrMalformed means the provider returned a response that could not be
	// parsed. Forecast callers treat this like ErrUnavailable; routing
	// callers propagate it, since a route with no usable geometry cannot be
	// ranked.
	ErrMalformed = errors.New("malformed provider response")

	// ErrConflict means the requested state transition is not allowed from
	// the resource's current state, such as confirming an expired report.
	ErrConflict = errors.New("conflicting state")
)
