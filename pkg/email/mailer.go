package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrymomot/commitment/pkg/validator"
)

// EmailSender represents an interface for sending emails.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) (*SendResult, error)
}

// SendEmailParams represents the parameters for sending an email.
type SendEmailParams struct {
	From     string `json:"from,omitempty"`     // Overrides the configured sender when set
	SendTo   string `json:"send_to"`            // Email address of the recipient
	ReplyTo  string `json:"reply_to,omitempty"` // Optional
	Subject  string `json:"subject"`            // Subject of the email
	BodyHTML string `json:"body_html"`          // HTML body of the email
	Tag      string `json:"tag,omitempty"`      // Optional
}

// SendResult is the provider's acknowledgement of an accepted message.
type SendResult struct {
	ID string `json:"id"`
}

// Validate checks that the message can be handed to a provider.
func (p SendEmailParams) Validate() error {
	err := validator.Apply(
		validator.Required("SendTo", p.SendTo).WithMessage("SendTo is required"),
		validator.ValidEmail("SendTo", p.SendTo).WithMessage("SendTo must be a valid email address"),
		validator.ValidEmail("ReplyTo", p.ReplyTo).When(p.ReplyTo != "").WithMessage("ReplyTo must be a valid email address"),
		validator.ValidEmail("From", p.From).When(p.From != "").WithMessage("From must be a valid email address"),
		validator.Required("Subject", p.Subject).WithMessage("Subject is required"),
		validator.Required("BodyHTML", p.BodyHTML).WithMessage("BodyHTML is required"),
	)
	if err != nil {
		return errors.Join(ErrInvalidParams, err)
	}
	return nil
}

func (p SendEmailParams) sender(fallback string) string {
	if p.From != "" {
		return p.From
	}
	return fallback
}

func validateSender(sender string) error {
	if sender == "" {
		return fmt.Errorf("%w: SenderEmail is required", ErrInvalidConfig)
	}
	if !validator.ValidEmail("SenderEmail", sender).Check() {
		return fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	}
	return nil
}
