// Package httpserver runs an http.Handler with sane timeouts, graceful
// shutdown and health probes.
//
// Server is built with New or NewFromConfig plus functional options. Run
// binds the listener, logs the bound address and blocks until the context is
// cancelled, SIGINT/SIGTERM arrives or Shutdown is called; in-flight requests
// are drained within the shutdown timeout. Start and stop hooks run around
// that life cycle.
//
//	r := chi.NewRouter()
//	r.Get("/healthz", httpserver.LivenessHandler())
//	r.Get("/readyz", httpserver.ReadinessHandler(log, 2*time.Second,
//		httpserver.HealthCheck{Name: "redis", Check: redis.Healthcheck(client)},
//	))
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, r); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Run wraps listen and serve errors with ErrStart; Shutdown wraps drain
// failures with ErrShutdown.
package httpserver
