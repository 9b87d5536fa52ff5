package email

import (
	"fmt"
	"strings"
)

// NewSender builds the sender selected by cfg.Provider. Network providers
// are wrapped in a ThrottledSender; the dev sender is not.
func NewSender(cfg Config) (EmailSender, error) {
	var (
		sender EmailSender
		err    error
	)

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderResend, "":
		sender, err = NewResendClient(cfg)
	case ProviderPostmark:
		sender, err = NewPostmarkClient(cfg)
	case ProviderDev:
		if cfg.DevDir == "" {
			return nil, fmt.Errorf("%w: DevDir is required", ErrInvalidConfig)
		}
		return NewDevSender(cfg.DevDir, cfg.SenderEmail), nil
	default:
		return nil, fmt.Errorf("%w: %w: %q", ErrInvalidConfig, ErrUnknownProvider, cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	return NewThrottledSender(sender, cfg.MaxPerSecond, cfg.Burst), nil
}

// MustNewSender is like NewSender but panics on invalid config.
func MustNewSender(cfg Config) EmailSender {
	sender, err := NewSender(cfg)
	if err != nil {
		panic(err)
	}
	return sender
}
