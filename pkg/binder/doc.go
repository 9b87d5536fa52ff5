// Package binder decodes HTTP request bodies into Go values for use with
// handler.Wrap.
//
// JSON is strict by default: it requires an application/json Content-Type,
// rejects unknown struct fields and trailing data, and caps the body at
// DefaultMaxJSONSize. Options relax or tighten each of these:
//
//	bind := binder.JSON(
//	    binder.WithMaxSize(64<<10),
//	    binder.WithAnyContentType(),
//	)
//
// Every failure wraps ErrFailedToParseJSON, ErrMissingContentType or
// ErrUnsupportedMediaType so callers can map them with errors.Is.
package binder
