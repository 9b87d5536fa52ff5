package contact_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/commitment/modules/contact"
	"github.com/dmitrymomot/commitment/pkg/config"
	"github.com/dmitrymomot/commitment/pkg/ratelimit"
)

func TestConfig_Defaults(t *testing.T) {
	t.Parallel()

	var cfg contact.Config
	require.NoError(t, config.Parse(&cfg, map[string]string{
		"CONTACT_EMAIL_TO": "owner@example.com",
	}))

	assert.Equal(t, "owner@example.com", cfg.ToEmail)
	assert.Empty(t, cfg.FromEmail)
	assert.Equal(t, 3, cfg.RateLimit)
	assert.Equal(t, time.Minute, cfg.RateWindow)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.True(t, cfg.EnforceDateBounds)
	assert.False(t, cfg.TrustProxy)
	assert.Equal(t, int64(65536), cfg.MaxBodyBytes)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cfg   contact.Config
		valid bool
	}{
		{name: "recipient set", cfg: contact.Config{ToEmail: "owner@example.com"}, valid: true},
		{name: "recipient and sender set", cfg: contact.Config{ToEmail: "owner@example.com", FromEmail: "noreply@example.com"}, valid: true},
		{name: "missing recipient", cfg: contact.Config{}},
		{name: "malformed recipient", cfg: contact.Config{ToEmail: "owner"}},
		{name: "malformed sender", cfg: contact.Config{ToEmail: "owner@example.com", FromEmail: "noreply"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, contact.ErrNotConfigured)
		})
	}
}

func TestConfig_Location(t *testing.T) {
	t.Parallel()

	loc, err := contact.Config{}.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	loc, err = contact.Config{Timezone: "Europe/Berlin"}.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())

	_, err = contact.Config{Timezone: "Mars/Olympus"}.Location()
	assert.Error(t, err)
}

func TestNewLimiter(t *testing.T) {
	t.Parallel()

	store := ratelimit.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })

	_, err := contact.NewLimiter(contact.Config{RateLimit: 0, RateWindow: time.Minute}, store)
	assert.ErrorIs(t, err, ratelimit.ErrInvalidLimit)

	limiter, err := contact.NewLimiter(contact.Config{RateLimit: 3, RateWindow: time.Minute}, store)
	require.NoError(t, err)
	assert.NotNil(t, limiter)
}
