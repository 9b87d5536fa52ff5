// Package requestid attaches a correlation id to every HTTP request.
//
// Middleware reuses a client supplied X-Request-ID when it is at most 128
// characters of [a-zA-Z0-9_-], and otherwise generates a UUIDv4. The id is
// stored in the request context and echoed in the response header.
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//
// LoggerExtractor plugs into logger.WithContextExtractors so every record
// logged with the request context carries "request_id":
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
package requestid
