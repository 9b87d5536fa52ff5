package contact

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/commitment/handler"
	"github.com/dmitrymomot/commitment/pkg/binder"
	"github.com/dmitrymomot/commitment/pkg/clientip"
	"github.com/dmitrymomot/commitment/pkg/email"
	"github.com/dmitrymomot/commitment/pkg/logger"
	"github.com/dmitrymomot/commitment/pkg/ratelimit"
	"github.com/dmitrymomot/commitment/pkg/validator"
)

// FallbackClientIP keys callers whose address cannot be determined.
const FallbackClientIP = "127.0.0.1"

// Handler serves POST /send. Requests pass, in order, the caller address
// resolution, the rate limiter and the configuration check before the body
// is read.
type Handler struct {
	cfg          Config
	svc          *Service
	limiter      ratelimit.Limiter
	log          *slog.Logger
	loc          *time.Location
	now          func() time.Time
	errorHandler handler.ErrorHandler[handler.Context]
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if log != nil {
			h.log = log
		}
	}
}

// WithClock overrides the time source used for goal date bounds.
func WithClock(now func() time.Time) HandlerOption {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

// NewHandler creates the submission handler. A nil svc puts the endpoint
// in unconfigured mode: every request that passes the rate limiter gets the
// configuration error.
func NewHandler(cfg Config, svc *Service, limiter ratelimit.Limiter, opts ...HandlerOption) (*Handler, error) {
	if limiter == nil {
		return nil, ErrLimiterRequired
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	h := &Handler{
		cfg:     cfg,
		svc:     svc,
		limiter: limiter,
		log:     slog.Default(),
		loc:     loc,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.errorHandler = handler.NewErrorHandler(h.log, handler.ErrorHandlerConfig{
		Classify:        classify,
		FallbackMessage: MsgUnexpected,
		Component:       "contact",
	})
	return h, nil
}

// Configured reports whether submissions can be delivered.
func (h *Handler) Configured() bool {
	return h.svc != nil
}

// Handle implements Mountable.
func (h *Handler) Handle() http.Handler {
	r := chi.NewRouter()

	r.With(
		clientip.Middleware(
			clientip.WithTrustProxy(h.cfg.TrustProxy),
			clientip.WithFallback(FallbackClientIP),
		),
		ratelimit.Middleware(h.limiter, rateLimitKey,
			ratelimit.WithOnLimitReached(h.tooManyRequests),
			ratelimit.WithOnError(h.limiterFailed),
		),
		h.requireConfig,
	).Post("/send", handler.Wrap(h.send,
		handler.WithBinder[handler.Context, map[string]any](binder.JSON(
			binder.WithMaxSize(h.cfg.MaxBodyBytes),
			binder.WithAnyContentType(),
		)),
		handler.WithErrorHandler[handler.Context, map[string]any](h.errorHandler),
	))

	return r
}

var rateLimitKey = ratelimit.Composite(
	ratelimit.Static("contact"),
	ratelimit.WithFallback(clientip.FromRequest, FallbackClientIP),
)

func (h *Handler) send(ctx handler.Context, in map[string]any) handler.Response {
	var opts []SchemaOption
	if h.cfg.EnforceDateBounds {
		opts = append(opts, WithGoalDateBounds(h.now(), h.loc))
	}

	sub, err := ParseSubmission(in, opts...)
	if err != nil {
		return handler.Fail(err)
	}

	res, err := h.svc.Submit(ctx, sub)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(res)
}

func (h *Handler) requireConfig(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.Configured() {
			h.errorHandler(handler.NewContext(w, r), ErrNotConfigured)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) tooManyRequests(w http.ResponseWriter, r *http.Request, result *ratelimit.Result) {
	h.log.InfoContext(r.Context(), "submission rate limited",
		logger.ClientIP(clientip.FromRequest(r)),
		slog.Time("reset_at", result.ResetAt),
		logger.Component("contact"),
	)
	resp := handler.JSON(errorBody{Error: MsgTooManyRequests}, handler.WithJSONStatus(http.StatusTooManyRequests))
	if err := resp.Render(w, r); err != nil {
		h.log.ErrorContext(r.Context(), "failed to write rate limit response", logger.Error(err))
	}
}

func (h *Handler) limiterFailed(r *http.Request, err error) {
	h.log.ErrorContext(r.Context(), "rate limiter unavailable, request let through",
		logger.Error(err),
		logger.ClientIP(clientip.FromRequest(r)),
		logger.Component("contact"),
	)
}

type errorBody struct {
	Error   any                  `json:"error"`
	Details *email.ProviderError `json:"details,omitempty"`
}

// classify maps pipeline errors to responses. Anything unknown, binder
// failures included, falls through to the generic 500.
func classify(err error) (handler.ErrorInfo, bool) {
	if errors.Is(err, ErrNotConfigured) {
		return handler.ErrorInfo{
			StatusCode: http.StatusInternalServerError,
			Body:       errorBody{Error: MsgNotConfigured},
		}, true
	}

	if pe, ok := email.AsProviderError(err); ok {
		return handler.ErrorInfo{
			StatusCode: http.StatusInternalServerError,
			Body:       errorBody{Error: MsgSendFailed, Details: pe},
		}, true
	}
	if errors.Is(err, email.ErrFailedToSendEmail) {
		return handler.ErrorInfo{
			StatusCode: http.StatusInternalServerError,
			Body:       errorBody{Error: MsgSendFailed},
		}, true
	}

	// Message validation at the sender is a server fault, not a bad request.
	if errors.Is(err, email.ErrInvalidParams) {
		return handler.ErrorInfo{}, false
	}

	if errs := validator.ExtractValidationErrors(err); errs != nil {
		return handler.ErrorInfo{
			StatusCode: http.StatusBadRequest,
			Body:       errorBody{Error: Issues(errs)},
		}, true
	}

	return handler.ErrorInfo{}, false
}
