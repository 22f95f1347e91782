package steamauth

// Option configures a Handler
type Option func(*Handler)

// WithLogHandler sets the LogHandler used to wrap every handler. (default: logs via logger.Req)
func WithLogHandler(l LogHandler) Option {
	return func(s *Handler) {
		s.handle = l
	}
}

// ResolverOption configures a Resolver
type ResolverOption func(*Resolver)

// WithAssertionVerifier makes the Resolver confirm every callback with the provider
// before looking up the profile. (default: disabled)
func WithAssertionVerifier(v AssertionVerifier) ResolverOption {
	return func(r *Resolver) {
		r.verifier = v
	}
}
