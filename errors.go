package steamauth

import (
	"github.com/cccteam/steamauth/openid"
	"github.com/go-playground/errors/v5"
)

// Error is a constant error value returned by the Resolver
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrNotConfigured is returned when no Steam Web API key is configured
	ErrNotConfigured Error = "STEAM_API_KEY not configured"

	// ErrProfileNotFound is returned when Steam has no record for a valid identity
	ErrProfileNotFound Error = "Steam profile not found"
)

var (
	// ErrMalformedClaim is returned when openid.claimed_id does not carry an identifier
	ErrMalformedClaim = openid.ErrMalformedClaim

	// ErrAssertionRejected is returned when Steam does not vouch for the callback parameters
	ErrAssertionRejected = openid.ErrAssertionRejected
)

// UpstreamError reports a failed call to Steam
type UpstreamError struct {
	err error
}

func newUpstreamError(err error) *UpstreamError {
	return &UpstreamError{err: err}
}

// Error returns the client facing diagnostic
func (e *UpstreamError) Error() string {
	return "Steam API error: " + e.Detail()
}

// Detail returns the root cause of the failure without call site decoration
func (e *UpstreamError) Detail() string {
	return errors.Cause(e.err).Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.err
}
