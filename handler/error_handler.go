package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/commitment/pkg/logger"
	"github.com/dmitrymomot/commitment/pkg/requestid"
)

// DefaultErrorMessage is the body text for errors no classifier recognises.
const DefaultErrorMessage = "An unexpected error occurred."

// ErrorInfo contains classified error information
type ErrorInfo struct {
	StatusCode int
	// Body is encoded as the JSON response.
	Body any
}

// Classifier maps domain errors to a response. It returns false for errors
// it does not know, which then fall back to the default mapping.
type Classifier func(err error) (ErrorInfo, bool)

// ErrorHandlerConfig configures the JSON error handler
type ErrorHandlerConfig struct {
	// Classify maps domain errors; optional.
	Classify Classifier
	// FallbackMessage replaces DefaultErrorMessage for unclassified errors.
	FallbackMessage string
	// Component is attached to every log record.
	Component string
}

func isClientError(statusCode int) bool {
	return statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError
}

// determineLogLevel keeps client mistakes out of the error stream.
func determineLogLevel(statusCode int) slog.Level {
	if isClientError(statusCode) {
		return slog.LevelWarn
	}
	return slog.LevelError
}

func setConfigDefaults(cfg ErrorHandlerConfig) ErrorHandlerConfig {
	if cfg.FallbackMessage == "" {
		cfg.FallbackMessage = DefaultErrorMessage
	}
	if cfg.Component == "" {
		cfg.Component = "error_handler"
	}
	return cfg
}

// classifyError analyzes the error and returns structured error information.
// Unclassified errors never leak their text to the client.
func classifyError(err error, cfg ErrorHandlerConfig) ErrorInfo {
	if cfg.Classify != nil {
		if info, ok := cfg.Classify(err); ok {
			return info
		}
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return ErrorInfo{
			StatusCode: httpErr.Code,
			Body:       map[string]string{"error": http.StatusText(httpErr.Code)},
		}
	}

	return ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Body:       map[string]string{"error": cfg.FallbackMessage},
	}
}

func logError(log *slog.Logger, ctx Context, err error, info ErrorInfo, cfg ErrorHandlerConfig) {
	r := ctx.Request()
	log.LogAttrs(r.Context(), determineLogLevel(info.StatusCode), "request error",
		logger.RequestID(requestid.FromContext(r.Context())),
		logger.Error(err),
		slog.Int("status_code", info.StatusCode),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		logger.Component(cfg.Component),
	)
}

// NewErrorHandler creates an error handler that logs the failure and
// writes the classified JSON body.
// Configure it once per module and pass it to Wrap.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	cfg = setConfigDefaults(cfg)
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		info := classifyError(err, cfg)
		logError(log, ctx, err, info, cfg)

		w := ctx.ResponseWriter()
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(info.StatusCode)
		if encErr := json.NewEncoder(w).Encode(info.Body); encErr != nil {
			log.LogAttrs(ctx.Request().Context(), slog.LevelError, "failed to encode error response",
				logger.Error(encErr),
				logger.Event("render_error"),
				logger.Component(cfg.Component),
			)
		}
	}
}
