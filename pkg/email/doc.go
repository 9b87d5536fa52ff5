// Package email provides a provider-agnostic interface for sending transactional emails.
//
// The package is built around the EmailSender interface so providers can be
// swapped without changing application code. Supported implementations:
//   - Resend (NewResendClient), the default provider
//   - Postmark (NewPostmarkClient) with open and link tracking
//   - DevSender for local development (saves emails to disk)
//   - ThrottledSender, a decorator pacing sends with a token bucket
//
// NewSender picks the implementation from Config.Provider:
//
//	cfg, err := config.Load[email.Config]()
//	sender, err := email.NewSender(cfg)
//	if errors.Is(err, email.ErrInvalidConfig) {
//	    // credentials missing for the selected provider
//	}
//
//	res, err := sender.SendEmail(ctx, email.SendEmailParams{
//	    SendTo:   "owner@example.com",
//	    ReplyTo:  "visitor@example.com",
//	    Subject:  "New Commitment from Jane",
//	    BodyHTML: html,
//	})
//
// All implementations validate parameters before sending.
//
// # Error Handling
//
//   - ErrInvalidConfig: configuration validation failed
//   - ErrInvalidParams: email parameters validation failed
//   - ErrFailedToSendEmail: delivery failed
//   - *ProviderError: the provider rejected the message; it matches
//     ErrFailedToSendEmail and carries the provider's code and message
//
// The templates subpackage renders templ components into HTML bodies.
package email
