package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/locality-resolver/internal/geocoder"
)

// ErrorKind classifies a failed resolution.
type ErrorKind string

const (
	KindInvalidInput           ErrorKind = "invalid_input"
	KindMissingCredential      ErrorKind = "missing_credential"
	KindUpstreamNoResults      ErrorKind = "upstream_no_results"
	KindNoCityFound            ErrorKind = "no_city_found"
	KindRateLimited            ErrorKind = "rate_limited"
	KindUnauthorizedCredential ErrorKind = "unauthorized_credential"
	KindUpstreamTransportError ErrorKind = "upstream_transport_error"
)

// ServerFault reports whether the kind is a service-side problem rather than
// something the caller can fix.
func (k ErrorKind) ServerFault() bool {
	switch k {
	case KindMissingCredential, KindUnauthorizedCredential, KindUpstreamTransportError:
		return true
	}
	return false
}

// ResolveError is the structured failure returned by LocalityService.
type ResolveError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

func newResolveError(kind ErrorKind, message string, err error) *ResolveError {
	return &ResolveError{Kind: kind, Message: message, Err: err}
}

// AsResolveError extracts a *ResolveError from err. Any other non-nil error
// is reported as a transport error.
func AsResolveError(err error) *ResolveError {
	if err == nil {
		return nil
	}
	var re *ResolveError
	if errors.As(err, &re) {
		return re
	}
	return newResolveError(KindUpstreamTransportError, err.Error(), err)
}

// providerFailure maps a geocoder error onto the error taxonomy.
func providerFailure(ctx context.Context, err error) *ResolveError {
	switch {
	case eris.Is(err, geocoder.ErrNoResults):
		return newResolveError(KindUpstreamNoResults, "the address could not be geocoded", err)
	case eris.Is(err, geocoder.ErrRateLimited):
		return newResolveError(KindRateLimited, "geocoding provider rate limit reached, retry later", err)
	case eris.Is(err, geocoder.ErrUnauthorized):
		return newResolveError(KindUnauthorizedCredential, "geocoding provider rejected the configured credential", err)
	case ctx.Err() != nil:
		return newResolveError(KindUpstreamTransportError, "request cancelled: "+ctx.Err().Error(), err)
	default:
		return newResolveError(KindUpstreamTransportError, "geocoding request failed: "+err.Error(), err)
	}
}
