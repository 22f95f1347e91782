package openid

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/errors/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

const name = "github.com/cccteam/steamauth/openid"

// maxResponseSize bounds the key-value form read from the provider
const maxResponseSize = 1 << 16

// Verifier confirms positive assertions with the provider through a
// check_authentication direct request.
type Verifier struct {
	endpoint string
	returnTo *url.URL
	client   *http.Client
}

// NewVerifier returns a Verifier for assertions issued by endpoint in response to
// a login started with baseURL.
func NewVerifier(endpoint, baseURL string, timeout time.Duration) *Verifier {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	// an unparsable base leaves returnTo nil, which rejects every assertion
	returnTo, _ := url.Parse(ReturnTo(baseURL))

	return &Verifier{
		endpoint: endpoint,
		returnTo: returnTo,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Verify returns nil if the provider confirms the assertion carried by params.
//
// ErrAssertionRejected is returned when the assertion is not a positive one for this
// relying party, or when the provider reports it as invalid. Any other error means
// the provider could not be asked.
func (v *Verifier) Verify(ctx context.Context, params url.Values) error {
	ctx, span := otel.Tracer(name).Start(ctx, "Verifier.Verify()")
	defer span.End()

	if params.Get(ParamMode) != modeIDRes {
		return ErrAssertionRejected
	}
	if params.Get(ParamOPEndpoint) != v.endpoint {
		return ErrAssertionRejected
	}
	if !v.matchesReturnTo(params.Get(ParamReturnTo)) {
		return ErrAssertionRejected
	}
	if params.Get(ParamIdentity) != params.Get(ParamClaimedID) {
		return ErrAssertionRejected
	}

	form := url.Values{}
	for k, vals := range params {
		if strings.HasPrefix(k, "openid.") {
			form[k] = vals
		}
	}
	form.Set(ParamMode, modeCheckAuthentication)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Wrap(err, "http.NewRequestWithContext()")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "http.Client.Do()")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Newf("unexpected status %s", resp.Status)
	}

	kv, err := parseKeyValueForm(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return errors.Wrap(err, "parseKeyValueForm()")
	}

	if kv["is_valid"] != "true" {
		return ErrAssertionRejected
	}

	return nil
}

// matchesReturnTo reports whether raw addresses this relying party: same scheme, host
// and path, and every query value of the expected return_to present verbatim.
func (v *Verifier) matchesReturnTo(raw string) bool {
	if v.returnTo == nil {
		return false
	}

	got, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if got.Scheme != v.returnTo.Scheme || got.Host != v.returnTo.Host || got.Path != v.returnTo.Path {
		return false
	}

	q := got.Query()
	for k, vals := range v.returnTo.Query() {
		if !slices.Equal(q[k], vals) {
			return false
		}
	}

	return true
}

// parseKeyValueForm decodes the newline separated key:value encoding used for
// OpenID direct responses.
func parseKeyValueForm(r io.Reader) (map[string]string, error) {
	kv := make(map[string]string)
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := s.Text()
		if line == "" {
			continue
		}

		k, v, ok := strings.Cut(line, ":")
		if !ok {
			return nil, errors.Newf("invalid key-value line %q", line)
		}
		kv[k] = v
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "bufio.Scanner.Scan()")
	}

	return kv, nil
}
