package openid

// Error is a constant error value returned by this package
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrMalformedClaim is returned when openid.claimed_id does not end in an identifier
	ErrMalformedClaim Error = "malformed openid.claimed_id"

	// ErrAssertionRejected is returned when the provider does not vouch for an assertion
	ErrAssertionRejected Error = "OpenID assertion rejected"
)
