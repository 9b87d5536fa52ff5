package email

import (
	"errors"
	"fmt"
)

var (
	ErrFailedToSendEmail = errors.New("mailer.errors.failed_to_send_email")
	ErrInvalidConfig     = errors.New("mailer.errors.invalid_config")
	ErrInvalidParams     = errors.New("mailer.errors.invalid_params")
	ErrUnknownProvider   = errors.New("mailer.errors.unknown_provider")
)

// ProviderError is the failure reported by an email provider. It is safe
// to expose to API clients: it carries no credentials or request data.
type ProviderError struct {
	Provider string `json:"provider"`
	Code     int64  `json:"code,omitempty"`
	Message  string `json:"message"`
}

func (e *ProviderError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s error: %d - %s", e.Provider, e.Code, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Provider, e.Message)
}

// Unwrap lets errors.Is match ErrFailedToSendEmail.
func (e *ProviderError) Unwrap() error {
	return ErrFailedToSendEmail
}

// AsProviderError extracts the provider failure from err, if any.
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
