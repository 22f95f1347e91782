package openid

import (
	"net/url"
	"strings"
)

// IsCallback reports whether params carry a provider assertion. Requests without
// openid.claimed_id are fresh login requests.
func IsCallback(params url.Values) bool {
	_, ok := params[ParamClaimedID]

	return ok
}

// ClaimedID returns the identifier at the end of the openid.claimed_id URL,
// e.g. 76561198000000000 for https://steamcommunity.com/openid/id/76561198000000000.
func ClaimedID(params url.Values) (string, error) {
	return ParseClaim(params.Get(ParamClaimedID))
}

// ParseClaim extracts the final path segment of claim.
func ParseClaim(claim string) (string, error) {
	i := strings.LastIndex(claim, "/")
	if i < 0 {
		return "", ErrMalformedClaim
	}

	id := claim[i+1:]
	if strings.TrimSpace(id) == "" {
		return "", ErrMalformedClaim
	}

	return id, nil
}
