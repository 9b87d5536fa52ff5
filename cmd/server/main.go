// Command server runs the commitment form endpoint.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/commitment/modules/contact"
	"github.com/dmitrymomot/commitment/pkg/config"
	"github.com/dmitrymomot/commitment/pkg/email"
	"github.com/dmitrymomot/commitment/pkg/environment"
	"github.com/dmitrymomot/commitment/pkg/httpserver"
	"github.com/dmitrymomot/commitment/pkg/logger"
	"github.com/dmitrymomot/commitment/pkg/ratelimit"
	"github.com/dmitrymomot/commitment/pkg/redis"
	"github.com/dmitrymomot/commitment/pkg/requestid"
)

type appConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Name     string `env:"APP_NAME" envDefault:"commitment"`
	LogLevel string `env:"LOG_LEVEL"`

	// MaxTrackedCallers bounds the in-memory rate limit state.
	MaxTrackedCallers int           `env:"RATE_LIMIT_MAX_KEYS" envDefault:"10000"`
	CleanupInterval   time.Duration `env:"RATE_LIMIT_CLEANUP_INTERVAL" envDefault:"1m"`
	ReadinessTimeout  time.Duration `env:"READINESS_TIMEOUT" envDefault:"2s"`
}

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		appCfg     appConfig
		httpCfg    httpserver.Config
		emailCfg   email.Config
		contactCfg contact.Config
		redisCfg   redis.Config
	)
	if err := errors.Join(
		config.Load(&appCfg),
		config.Load(&httpCfg),
		config.Load(&emailCfg),
		config.Load(&contactCfg),
		config.Load(&redisCfg),
	); err != nil {
		return err
	}

	env := environment.Parse(appCfg.Env)
	logOpts := []logger.Option{
		logger.WithEnvironment(env, appCfg.Name),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			environment.LoggerExtractor(),
		),
	}
	if appCfg.LogLevel != "" {
		level, err := logger.ParseLevel(appCfg.LogLevel)
		if err != nil {
			return err
		}
		logOpts = append(logOpts, logger.WithLevel(level))
	}
	log := logger.New(logOpts...)
	logger.SetAsDefault(log)

	store, checks, closeStore, err := newRateLimitStore(ctx, appCfg, redisCfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	limiter, err := contact.NewLimiter(contactCfg, store)
	if err != nil {
		return err
	}

	svc, err := newService(emailCfg, contactCfg, log)
	if err != nil {
		log.ErrorContext(ctx, "contact endpoint is not configured, submissions will be refused",
			logger.Error(err),
			logger.Component("contact"),
		)
	}

	h, err := contact.NewHandler(contactCfg, svc, limiter, contact.WithLogger(log))
	if err != nil {
		return err
	}

	r := contact.Router(contact.RouterOptions{
		Middlewares: []func(http.Handler) http.Handler{
			requestid.Middleware,
			environment.Middleware(env),
			middleware.Recoverer,
		},
		Submissions: h,
	})
	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(log, appCfg.ReadinessTimeout, checks...))

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}

// newService builds the delivery service. A nil service with an error means
// the provider or the recipient is missing.
func newService(emailCfg email.Config, contactCfg contact.Config, log *slog.Logger) (*contact.Service, error) {
	if err := contactCfg.Validate(); err != nil {
		return nil, err
	}
	sender, err := email.NewSender(emailCfg)
	if err != nil {
		return nil, errors.Join(contact.ErrNotConfigured, err)
	}
	loc, err := contactCfg.Location()
	if err != nil {
		return nil, err
	}

	composer := contact.NewComposer(contactCfg.ToEmail,
		contact.WithFrom(contactCfg.FromEmail),
		contact.WithLocation(loc),
	)
	return contact.NewService(sender, composer, log), nil
}

// newRateLimitStore uses Redis when REDIS_URL is set and an in-memory store
// otherwise.
func newRateLimitStore(ctx context.Context, appCfg appConfig, redisCfg redis.Config, log *slog.Logger) (ratelimit.Store, []httpserver.HealthCheck, func(), error) {
	if redisCfg.Enabled() {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return nil, nil, nil, err
		}
		log.InfoContext(ctx, "rate limit state stored in redis", logger.Component("ratelimit"))

		checks := []httpserver.HealthCheck{{Name: "redis", Check: redis.Healthcheck(client)}}
		closeFn := func() {
			if err := client.Close(); err != nil {
				log.Error("failed to close redis client", logger.Error(err))
			}
		}
		return ratelimit.NewRedisStore(client, ratelimit.WithKeyPrefix("commitment:ratelimit")), checks, closeFn, nil
	}

	store := ratelimit.NewMemoryStore(
		ratelimit.WithMaxKeys(appCfg.MaxTrackedCallers),
		ratelimit.WithCleanupInterval(appCfg.CleanupInterval),
	)
	closeFn := func() { _ = store.Close() }
	return store, nil, closeFn, nil
}
