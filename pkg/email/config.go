package email

import "time"

// Provider names accepted by Config.Provider.
const (
	ProviderResend   = "resend"
	ProviderPostmark = "postmark"
	ProviderDev      = "dev"
)

// Config holds email service configuration.
// Credentials are optional at load time so a process can start without
// them; NewSender reports ErrInvalidConfig when the selected provider
// lacks what it needs.
type Config struct {
	Provider             string        `env:"EMAIL_PROVIDER" envDefault:"resend"`
	ResendAPIKey         string        `env:"RESEND_API_KEY"`
	PostmarkServerToken  string        `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string        `env:"POSTMARK_ACCOUNT_TOKEN"`
	DevDir               string        `env:"EMAIL_DEV_DIR" envDefault:"./tmp/emails"`
	SenderEmail          string        `env:"SENDER_EMAIL" envDefault:"onboarding@resend.dev"`
	MaxPerSecond         float64       `env:"EMAIL_MAX_PER_SECOND" envDefault:"2"`
	Burst                int           `env:"EMAIL_BURST" envDefault:"1"`
	Timeout              time.Duration `env:"EMAIL_TIMEOUT" envDefault:"10s"`
}
