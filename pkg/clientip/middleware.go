package clientip

import "net/http"

// Option configures the middleware.
type Option func(*options)

type options struct {
	trustProxy bool
	fallback   string
}

// WithTrustProxy makes the middleware honour proxy headers.
func WithTrustProxy(trust bool) Option {
	return func(o *options) {
		o.trustProxy = trust
	}
}

// WithFallback sets the address stored when none can be derived.
func WithFallback(ip string) Option {
	return func(o *options) {
		o.fallback = ip
	}
}

// Middleware creates HTTP middleware that extracts and stores client IP in context.
// By default only the connection address is used.
func Middleware(opts ...Option) func(http.Handler) http.Handler {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := Resolve(r, o.trustProxy)
			if ip == "" {
				ip = o.fallback
			}
			ctx := SetIPToContext(r.Context(), ip)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromRequest returns the address stored by Middleware.
// Useful as a rate limit key function.
func FromRequest(r *http.Request) string {
	return GetIPFromContext(r.Context())
}
