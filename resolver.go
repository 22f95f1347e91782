package steamauth

import (
	"context"
	"net/url"

	"github.com/cccteam/logger"
	"github.com/cccteam/steamauth/openid"
	"github.com/go-playground/errors/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Profile is the public identity of a verified Steam user
type Profile struct {
	SteamID    string `json:"steamId"`
	Name       string `json:"name"`
	Avatar     string `json:"avatar"`
	ProfileURL string `json:"profileUrl"`
}

// Resolver turns provider callback parameters into a Profile
type Resolver struct {
	apiKey   string
	players  PlayerFetcher
	verifier AssertionVerifier
}

// NewResolver creates a Resolver. An empty apiKey is accepted; ResolveProfile will
// then fail with ErrNotConfigured.
func NewResolver(players PlayerFetcher, apiKey string, options ...ResolverOption) *Resolver {
	r := &Resolver{
		apiKey:  apiKey,
		players: players,
	}
	for _, opt := range options {
		opt(r)
	}

	return r
}

// ResolveProfile extracts the claimed identity from params and looks up its public
// profile. Callers must route requests where openid.IsCallback is false to the
// login flow instead.
//
// The returned error is one of ErrMalformedClaim, ErrNotConfigured,
// ErrAssertionRejected, ErrProfileNotFound or *UpstreamError.
func (r *Resolver) ResolveProfile(ctx context.Context, params url.Values) (*Profile, error) {
	ctx, span := otel.Tracer(name).Start(ctx, "Resolver.ResolveProfile()")
	defer span.End()

	steamID, err := openid.ClaimedID(params)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("steam.id", steamID))

	if r.apiKey == "" {
		return nil, ErrNotConfigured
	}

	if r.verifier != nil {
		if err := r.verifier.Verify(ctx, params); err != nil {
			if errors.Is(err, ErrAssertionRejected) {
				return nil, ErrAssertionRejected
			}

			return nil, newUpstreamError(errors.Wrap(err, "AssertionVerifier.Verify()"))
		}
	}

	players, err := r.players.PlayerSummaries(ctx, r.apiKey, []string{steamID})
	if err != nil {
		return nil, newUpstreamError(errors.Wrap(err, "PlayerFetcher.PlayerSummaries()"))
	}

	for _, p := range players {
		if p.SteamID != steamID {
			continue
		}

		logger.Ctx(ctx).AddRequestAttribute("Steam ID", steamID)

		return &Profile{
			SteamID:    p.SteamID,
			Name:       p.PersonaName,
			Avatar:     p.AvatarFull,
			ProfileURL: p.ProfileURL,
		}, nil
	}

	return nil, ErrProfileNotFound
}
