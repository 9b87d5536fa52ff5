package email

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mrz1836/postmark"
)

type postmarkClient struct {
	client *postmark.Client
	from   string
}

// PostmarkOption configures the Postmark client.
type PostmarkOption func(*postmark.Client)

// WithPostmarkBaseURL points the client at another API host.
func WithPostmarkBaseURL(baseURL string) PostmarkOption {
	return func(c *postmark.Client) {
		c.BaseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// NewPostmarkClient creates a Postmark-backed email sender.
// Both tokens are required for runtime operation.
func NewPostmarkClient(cfg Config, opts ...PostmarkOption) (EmailSender, error) {
	if cfg.PostmarkServerToken == "" {
		return nil, fmt.Errorf("%w: PostmarkServerToken is required", ErrInvalidConfig)
	}
	if cfg.PostmarkAccountToken == "" {
		return nil, fmt.Errorf("%w: PostmarkAccountToken is required", ErrInvalidConfig)
	}
	if err := validateSender(cfg.SenderEmail); err != nil {
		return nil, err
	}

	client := postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken)
	client.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	for _, opt := range opts {
		opt(client)
	}

	return &postmarkClient{client: client, from: cfg.SenderEmail}, nil
}

// SendEmail implements EmailSender using Postmark's transactional API.
// Opens and HTML link clicks are tracked.
func (c *postmarkClient) SendEmail(ctx context.Context, params SendEmailParams) (*SendResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	resp, err := c.client.SendEmail(ctx, postmark.Email{
		From:       params.sender(c.from),
		ReplyTo:    params.ReplyTo,
		To:         params.SendTo,
		Subject:    params.Subject,
		Tag:        params.Tag,
		HTMLBody:   params.BodyHTML,
		TrackOpens: true,
		TrackLinks: "HtmlOnly",
	})
	// The library reports a non-zero ErrorCode on 2xx responses as a plain
	// formatted error and non-2xx responses as postmark.APIError.
	if resp.ErrorCode != 0 {
		return nil, &ProviderError{
			Provider: ProviderPostmark,
			Code:     resp.ErrorCode,
			Message:  resp.Message,
		}
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errors.Join(ErrFailedToSendEmail, ctxErr)
		}
		var apiErr postmark.APIError
		if errors.As(err, &apiErr) {
			return nil, &ProviderError{
				Provider: ProviderPostmark,
				Code:     apiErr.ErrorCode,
				Message:  apiErr.Message,
			}
		}
		return nil, &ProviderError{Provider: ProviderPostmark, Message: err.Error()}
	}

	return &SendResult{ID: resp.MessageID}, nil
}
