package steamauth

import (
	"context"
	"net/url"

	"github.com/cccteam/steamauth/openid"
	"github.com/cccteam/steamauth/steamapi"
)

var (
	_ PlayerFetcher     = &steamapi.Client{}
	_ AssertionVerifier = &openid.Verifier{}
)

// PlayerFetcher looks up public player summaries
type PlayerFetcher interface {
	PlayerSummaries(ctx context.Context, apiKey string, steamIDs []string) ([]steamapi.Player, error)
}

// AssertionVerifier confirms an OpenID assertion with the provider
type AssertionVerifier interface {
	Verify(ctx context.Context, params url.Values) error
}
