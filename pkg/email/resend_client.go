package email

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/resend/resend-go/v2"
)

type resendClient struct {
	client *resend.Client
	from   string
}

// ResendOption configures the Resend client.
type ResendOption func(*resend.Client) error

// WithResendBaseURL points the client at another API host.
func WithResendBaseURL(rawURL string) ResendOption {
	return func(c *resend.Client) error {
		if !strings.HasSuffix(rawURL, "/") {
			rawURL += "/"
		}
		u, err := url.Parse(rawURL)
		if err != nil {
			return fmt.Errorf("%w: invalid Resend base URL: %v", ErrInvalidConfig, err)
		}
		c.BaseURL = u
		return nil
	}
}

// NewResendClient creates a Resend-backed email sender.
func NewResendClient(cfg Config, opts ...ResendOption) (EmailSender, error) {
	if cfg.ResendAPIKey == "" {
		return nil, fmt.Errorf("%w: ResendAPIKey is required", ErrInvalidConfig)
	}
	if err := validateSender(cfg.SenderEmail); err != nil {
		return nil, err
	}

	client := resend.NewCustomClient(&http.Client{Timeout: cfg.Timeout}, cfg.ResendAPIKey)
	for _, opt := range opts {
		if err := opt(client); err != nil {
			return nil, err
		}
	}

	return &resendClient{client: client, from: cfg.SenderEmail}, nil
}

// SendEmail implements EmailSender using Resend's emails API.
func (c *resendClient) SendEmail(ctx context.Context, params SendEmailParams) (*SendResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	req := &resend.SendEmailRequest{
		From:    params.sender(c.from),
		To:      []string{params.SendTo},
		Subject: params.Subject,
		Html:    params.BodyHTML,
		ReplyTo: params.ReplyTo,
	}
	if params.Tag != "" {
		req.Tags = []resend.Tag{{Name: "category", Value: params.Tag}}
	}

	sent, err := c.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errors.Join(ErrFailedToSendEmail, ctxErr)
		}
		return nil, &ProviderError{
			Provider: ProviderResend,
			Message:  strings.TrimPrefix(err.Error(), "[ERROR]: "),
		}
	}

	return &SendResult{ID: sent.Id}, nil
}
