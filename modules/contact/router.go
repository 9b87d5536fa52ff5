package contact

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Mountable is a self-contained set of routes.
type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures the contact module router.
type RouterOptions struct {
	// Middlewares run for every route, before any mounted service.
	Middlewares []func(http.Handler) http.Handler
	// Submissions is mounted under /api.
	Submissions Mountable
}

// Router creates the contact module router.
//
// Example:
//
//	h, err := contact.NewHandler(cfg, svc, limiter, contact.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//	r := contact.Router(contact.RouterOptions{
//	    Middlewares: []func(http.Handler) http.Handler{requestid.Middleware},
//	    Submissions: h,
//	})
//	r.Get("/healthz", httpserver.LivenessHandler())
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()
	r.Use(opts.Middlewares...)

	if opts.Submissions != nil {
		r.Mount("/api", opts.Submissions.Handle())
	}

	return r
}
