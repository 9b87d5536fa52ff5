// Package handler provides type-safe HTTP request handling.
//
// A HandlerFunc receives a Context and a bound request value and returns a
// Response. Wrap turns it into an http.HandlerFunc: it runs the configured
// binders, applies decorators, renders the response and routes every
// binding or rendering failure to one ErrorHandler.
//
//	func send(ctx handler.Context, in map[string]any) handler.Response {
//		res, err := svc.Submit(ctx, in)
//		if err != nil {
//			return handler.Fail(err)
//		}
//		return handler.JSON(res)
//	}
//
//	r.Post("/api/send", handler.Wrap(send,
//		handler.WithBinder[handler.Context, map[string]any](binder.JSON()),
//		handler.WithErrorHandler[handler.Context, map[string]any](
//			handler.NewErrorHandler(log, handler.ErrorHandlerConfig{Classify: classify}),
//		),
//	))
//
// # Responses
//
//	handler.JSON(v)                                   // 200 with v as the body
//	handler.JSON(v, handler.WithJSONStatus(201))      // custom status
//	handler.Fail(err)                                 // delegate to the ErrorHandler
//
// # Errors
//
// NewErrorHandler logs each failure with the request ID, at WARN for 4xx
// and ERROR otherwise, and writes a JSON body. A Classifier maps domain
// errors to status and body; HTTPError values map to their own status;
// everything else becomes a 500 with a generic message.
package handler
