package binder

import "errors"

// Common binding errors
var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON request body")
	ErrMissingContentType   = errors.New("missing content type")
	ErrBodyTooLarge         = errors.New("request body too large")
	// ErrBinderNotApplicable lets a binder opt out of a request; Wrap skips it.
	ErrBinderNotApplicable = errors.New("binder not applicable")
)
