// Package openid implements the relying party side of Steam's OpenID 2.0 login flow.
package openid

import (
	"net/url"
	"strings"
)

const (
	// DefaultEndpoint is Steam's OpenID 2.0 provider endpoint
	DefaultEndpoint = "https://steamcommunity.com/openid/login"

	nsOpenID2        = "http://specs.openid.net/auth/2.0"
	identifierSelect = "http://specs.openid.net/auth/2.0/identifier_select"

	modeCheckIDSetup        = "checkid_setup"
	modeIDRes               = "id_res"
	modeCheckAuthentication = "check_authentication"

	verifyAction = "action=verify"
)

// OpenID 2.0 message keys
const (
	ParamNS         = "openid.ns"
	ParamMode       = "openid.mode"
	ParamReturnTo   = "openid.return_to"
	ParamRealm      = "openid.realm"
	ParamIdentity   = "openid.identity"
	ParamClaimedID  = "openid.claimed_id"
	ParamOPEndpoint = "openid.op_endpoint"
)

// Builder constructs login redirects for a fixed provider endpoint.
type Builder struct {
	endpoint string
}

// NewBuilder returns a Builder for the given provider endpoint. An empty endpoint
// selects DefaultEndpoint.
func NewBuilder(endpoint string) *Builder {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return &Builder{endpoint: endpoint}
}

// Endpoint returns the provider endpoint used by the Builder
func (b *Builder) Endpoint() string {
	return b.endpoint
}

// LoginURL returns the provider URL the user agent must be sent to in order to sign in.
//
// baseURL is the externally visible address of the relying party. It is used as the
// realm, and with a verify marker appended, as the return_to target.
func (b *Builder) LoginURL(baseURL string) string {
	return LoginURL(b.endpoint, baseURL)
}

// LoginURL returns the checkid_setup redirect for endpoint using identifier_select,
// which leaves the choice of identity to the provider.
func LoginURL(endpoint, baseURL string) string {
	q := url.Values{}
	q.Set(ParamNS, nsOpenID2)
	q.Set(ParamMode, modeCheckIDSetup)
	q.Set(ParamReturnTo, ReturnTo(baseURL))
	q.Set(ParamRealm, baseURL)
	q.Set(ParamIdentity, identifierSelect)
	q.Set(ParamClaimedID, identifierSelect)

	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}

	return endpoint + sep + q.Encode()
}

// ReturnTo returns the return_to address for baseURL
func ReturnTo(baseURL string) string {
	if strings.Contains(baseURL, "?") {
		return baseURL + "&" + verifyAction
	}

	return baseURL + "?" + verifyAction
}
