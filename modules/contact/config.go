package contact

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrymomot/commitment/pkg/ratelimit"
	"github.com/dmitrymomot/commitment/pkg/validator"
)

// Config drives the submission endpoint.
type Config struct {
	// ToEmail receives every submission. Required for the endpoint to work.
	ToEmail string `env:"CONTACT_EMAIL_TO"`
	// FromEmail overrides the provider's default sender address.
	FromEmail string `env:"CONTACT_EMAIL_FROM"`

	RateLimit  int           `env:"CONTACT_RATE_LIMIT" envDefault:"3"`
	RateWindow time.Duration `env:"CONTACT_RATE_WINDOW" envDefault:"60s"`

	// Timezone is used to display the goal date and for date bounds.
	Timezone string `env:"CONTACT_TIMEZONE" envDefault:"UTC"`
	// EnforceDateBounds makes the server reject past goal dates and dates
	// more than a year ahead.
	EnforceDateBounds bool `env:"CONTACT_ENFORCE_DATE_BOUNDS" envDefault:"true"`
	// TrustProxy takes the caller address from proxy headers.
	TrustProxy   bool  `env:"CONTACT_TRUST_PROXY" envDefault:"false"`
	MaxBodyBytes int64 `env:"CONTACT_MAX_BODY_BYTES" envDefault:"65536"`
}

// Location resolves Timezone; empty means UTC.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("contact: invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Validate checks the recipient address. Failures wrap ErrNotConfigured.
func (c Config) Validate() error {
	err := validator.Apply(
		validator.Required("CONTACT_EMAIL_TO", c.ToEmail).WithMessage("is not set"),
		validator.ValidEmail("CONTACT_EMAIL_TO", c.ToEmail).WithMessage("must be a valid email address"),
		validator.ValidEmail("CONTACT_EMAIL_FROM", c.FromEmail).When(c.FromEmail != "").WithMessage("must be a valid email address"),
	)
	if err != nil {
		return errors.Join(ErrNotConfigured, err)
	}
	return nil
}

// NewLimiter builds the per-address sliding window limiter on store.
func NewLimiter(cfg Config, store ratelimit.Store, opts ...ratelimit.Option) (*ratelimit.SlidingWindow, error) {
	return ratelimit.NewSlidingWindow(store, cfg.RateLimit, cfg.RateWindow, opts...)
}
