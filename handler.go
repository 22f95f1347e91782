package steamauth

import (
	"encoding/json"
	"net/http"

	"github.com/cccteam/httpio"
	"github.com/cccteam/steamauth/config"
	"github.com/cccteam/steamauth/openid"
	"github.com/cccteam/steamauth/steamapi"
	"github.com/go-playground/errors/v5"
	"go.opentelemetry.io/otel"
)

const name = "github.com/cccteam/steamauth"

const (
	corsAllowMethods = "GET, POST, OPTIONS"
	corsAllowHeaders = "Content-Type, X-Session-Id"
	corsMaxAge       = "86400"
)

// intent is the only view of the HTTP method the rest of the package gets
type intent int

const (
	intentUnsupported intent = iota
	intentPreflight
	intentGet
)

func intentOf(method string) intent {
	switch method {
	case http.MethodOptions:
		return intentPreflight
	case http.MethodGet:
		return intentGet
	default:
		return intentUnsupported
	}
}

type loginResponse struct {
	LoginURL string `json:"loginUrl"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler serves the Steam login flow on a single endpoint
type Handler struct {
	resolver *Resolver
	login    *openid.Builder
	baseURL  string
	handle   LogHandler
}

// New creates a Handler. baseURL is the externally visible address the Handler is
// served at; it becomes the OpenID realm and the return_to target.
func New(resolver *Resolver, login *openid.Builder, baseURL string, options ...Option) *Handler {
	h := &Handler{
		resolver: resolver,
		login:    login,
		baseURL:  baseURL,
		handle:   handle,
	}
	for _, opt := range options {
		opt(h)
	}

	return h
}

// NewFromConfig wires a Handler and its Steam clients from cfg
func NewFromConfig(cfg config.Config, options ...Option) *Handler {
	var resolverOpts []ResolverOption
	if cfg.VerifyAssertion {
		resolverOpts = append(resolverOpts, WithAssertionVerifier(openid.NewVerifier(cfg.LoginEndpoint, cfg.BaseURL, cfg.APITimeout)))
	}

	resolver := NewResolver(steamapi.New(cfg.APIBaseURL, cfg.APITimeout), cfg.APIKey, resolverOpts...)

	return New(resolver, openid.NewBuilder(cfg.LoginEndpoint), cfg.BaseURL, options...)
}

// ServeHTTP dispatches on the request method. GET requests carrying an OpenID
// assertion are callbacks, every other GET asks for a login URL.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch intentOf(r.Method) {
	case intentPreflight:
		h.Preflight().ServeHTTP(w, r)
	case intentGet:
		if openid.IsCallback(r.URL.Query()) {
			h.Callback().ServeHTTP(w, r)
		} else {
			h.Login().ServeHTTP(w, r)
		}
	default:
		h.MethodNotAllowed().ServeHTTP(w, r)
	}
}

// Preflight answers CORS preflight requests
func (h *Handler) Preflight() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)
		w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
		w.Header().Set("Access-Control-Max-Age", corsMaxAge)
		w.WriteHeader(http.StatusOK)
	}
}

// Login responds with the provider URL the client must redirect the user to
func (h *Handler) Login() http.HandlerFunc {
	return h.handle(func(w http.ResponseWriter, r *http.Request) error {
		_, span := otel.Tracer(name).Start(r.Context(), "Handler.Login()")
		defer span.End()

		return encodeOK(w, loginResponse{LoginURL: h.login.LoginURL(h.baseURL)})
	})
}

// Callback is the handler for the redirect back from the provider. It responds with
// the profile of the verified user.
func (h *Handler) Callback() http.HandlerFunc {
	return h.handle(func(w http.ResponseWriter, r *http.Request) error {
		ctx, span := otel.Tracer(name).Start(r.Context(), "Handler.Callback()")
		defer span.End()

		profile, err := h.resolver.ResolveProfile(ctx, r.URL.Query())
		if err != nil {
			return encodeError(w, err)
		}

		return encodeOK(w, profile)
	})
}

// MethodNotAllowed rejects methods the endpoint does not serve
func (h *Handler) MethodNotAllowed() http.HandlerFunc {
	return h.handle(func(w http.ResponseWriter, _ *http.Request) error {
		return writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
	})
}

func encodeOK(w http.ResponseWriter, body any) error {
	setJSONHeaders(w)

	return httpio.NewEncoder(w).Ok(body)
}

// encodeError writes the client facing form of err and returns err for logging
func encodeError(w http.ResponseWriter, err error) error {
	status, msg := errorStatus(err)
	if werr := writeJSON(w, status, errorResponse{Error: msg}); werr != nil {
		return errors.Wrapf(werr, "writeJSON() for %v", err)
	}

	return err
}

func errorStatus(err error) (int, string) {
	var upstream *UpstreamError
	switch {
	case errors.Is(err, ErrMalformedClaim):
		return http.StatusBadRequest, ErrMalformedClaim.Error()
	case errors.Is(err, ErrAssertionRejected):
		return http.StatusForbidden, ErrAssertionRejected.Error()
	case errors.Is(err, ErrProfileNotFound):
		return http.StatusNotFound, ErrProfileNotFound.Error()
	case errors.Is(err, ErrNotConfigured):
		return http.StatusInternalServerError, ErrNotConfigured.Error()
	case errors.As(err, &upstream):
		return http.StatusInternalServerError, upstream.Error()
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) error {
	setJSONHeaders(w)
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		return errors.Wrap(err, "json.Encoder.Encode()")
	}

	return nil
}

func setJSONHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
}
