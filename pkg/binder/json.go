package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// DefaultMaxJSONSize is the default maximum size for JSON request bodies (1MB).
const DefaultMaxJSONSize = 1 << 20

// JSONOption configures the JSON binder.
type JSONOption func(*jsonConfig)

type jsonConfig struct {
	maxSize         int64
	anyContentType  bool
	allowUnknownKey bool
}

// WithMaxSize limits the request body to n bytes.
func WithMaxSize(n int64) JSONOption {
	return func(c *jsonConfig) {
		if n > 0 {
			c.maxSize = n
		}
	}
}

// WithAnyContentType accepts bodies regardless of the Content-Type header.
func WithAnyContentType() JSONOption {
	return func(c *jsonConfig) {
		c.anyContentType = true
	}
}

// WithUnknownFields accepts keys that do not map to a struct field.
func WithUnknownFields() JSONOption {
	return func(c *jsonConfig) {
		c.allowUnknownKey = true
	}
}

// JSON creates a JSON binder function. Decoding is strict by default:
// Content-Type must be application/json, unknown struct fields are
// rejected and the body must hold exactly one JSON value.
//
// Example:
//
//	http.Handle("/api/send", handler.Wrap(h,
//		handler.WithBinder[handler.Context, map[string]any](binder.JSON(binder.WithMaxSize(64<<10))),
//	))
func JSON(opts ...JSONOption) func(r *http.Request, v any) error {
	cfg := &jsonConfig{maxSize: DefaultMaxJSONSize}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(r *http.Request, v any) error {
		if err := r.Context().Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
		}

		if !cfg.anyContentType {
			if err := checkContentType(r.Header.Get("Content-Type")); err != nil {
				return err
			}
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, cfg.maxSize+1))
		if err != nil {
			return fmt.Errorf("%w: failed to read request body: %v", ErrFailedToParseJSON, err)
		}
		if int64(len(body)) > cfg.maxSize {
			return fmt.Errorf("%w: %w (max %d bytes)", ErrFailedToParseJSON, ErrBodyTooLarge, cfg.maxSize)
		}

		decoder := json.NewDecoder(bytes.NewReader(body))
		if !cfg.allowUnknownKey {
			decoder.DisallowUnknownFields()
		}

		if err := decoder.Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
			}
			return fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
		}

		// Ensure entire body was consumed
		var extra json.RawMessage
		if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: unexpected data after JSON value", ErrFailedToParseJSON)
		}

		return nil
	}
}

func checkContentType(contentType string) error {
	if contentType == "" {
		return fmt.Errorf("%w: missing content-type header, expected application/json", ErrMissingContentType)
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "application/json" {
		return fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, contentType)
	}

	return nil
}
