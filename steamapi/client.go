// Package steamapi is a minimal client for the Steam Web API.
package steamapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/errors/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

const (
	name = "github.com/cccteam/steamauth/steamapi"

	// DefaultBaseURL is the public Steam Web API host
	DefaultBaseURL = "http://api.steampowered.com"

	// DefaultTimeout bounds a single Steam Web API call
	DefaultTimeout = 5 * time.Second

	playerSummariesPath = "/ISteamUser/GetPlayerSummaries/v0002/"

	maxResponseSize = 1 << 20
)

// Client calls the Steam Web API
type Client struct {
	baseURL string
	client  *http.Client
}

// New returns a Client for baseURL. Each request is bounded by timeout.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// PlayerSummaries returns the public summaries for steamIDs. Unknown ids are
// omitted by Steam, so the result may be shorter than the request or empty.
func (c *Client) PlayerSummaries(ctx context.Context, apiKey string, steamIDs []string) ([]Player, error) {
	ctx, span := otel.Tracer(name).Start(ctx, "Client.PlayerSummaries()")
	defer span.End()

	q := url.Values{}
	q.Set("key", apiKey)
	q.Set("steamids", strings.Join(steamIDs, ","))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+playerSummariesPath+"?"+q.Encode(), http.NoBody)
	if err != nil {
		return nil, errors.Wrap(err, "http.NewRequestWithContext()")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(redact(err), "http.Client.Do()")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var body playerSummariesResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&body); err != nil {
		return nil, errors.Wrap(err, "json.Decoder.Decode()")
	}

	if body.Response == nil || body.Response.Players == nil {
		return nil, errors.New("response missing players list")
	}

	return body.Response.Players, nil
}

// redact removes the API key from the URL reported by transport errors
func redact(err error) error {
	urlErr, ok := err.(*url.Error)
	if !ok {
		return err
	}

	u, perr := url.Parse(urlErr.URL)
	if perr != nil {
		return err
	}
	q := u.Query()
	if q.Has("key") {
		q.Set("key", "REDACTED")
		u.RawQuery = q.Encode()
	}

	return &url.Error{Op: urlErr.Op, URL: u.String(), Err: urlErr.Err}
}
