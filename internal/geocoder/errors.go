package geocoder

import (
	"fmt"

	"github.com/rotisserie/eris"
)

var (
	// ErrNoResults: the provider could not geocode the query (400/404).
	ErrNoResults = eris.New("geocoder: address could not be resolved")
	// ErrRateLimited: the provider answered 429, or the local throttle
	// could not admit the call before the request deadline.
	ErrRateLimited = eris.New("geocoder: rate limited")
	// ErrUnauthorized: the provider rejected the credential (401/403).
	ErrUnauthorized = eris.New("geocoder: credential rejected")
)

// StatusError is an unexpected HTTP status from the provider.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("geocoder: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("geocoder: unexpected status %d: %s", e.StatusCode, e.Message)
}
