package contact

import (
	"errors"

	"github.com/dmitrymomot/commitment/pkg/validator"
)

var (
	// ErrNotConfigured is returned for every submission while the provider
	// credentials or the recipient address are missing.
	ErrNotConfigured = errors.New("contact: email provider or recipient not configured")

	// ErrComposeFailed wraps failures while rendering the notification email.
	ErrComposeFailed = errors.New("contact: failed to compose email")
)

// Response messages.
const (
	MsgTooManyRequests = "Too many requests. Please try again in a minute."
	MsgNotConfigured   = "Server configuration error. Please check environment variables."
	MsgSendFailed      = "Error sending email."
	MsgUnexpected      = "An unexpected error occurred."
)

// Issue is one field violation in a 400 response.
type Issue struct {
	Path    []string `json:"path"`
	Message string   `json:"message"`
}

// Issues converts validation errors into response issues, keeping order.
func Issues(errs validator.ValidationErrors) []Issue {
	issues := make([]Issue, 0, len(errs))
	for _, e := range errs {
		issues = append(issues, Issue{Path: []string{e.Field}, Message: e.Message})
	}
	return issues
}

// ErrLimiterRequired is returned by NewHandler without a rate limiter.
var ErrLimiterRequired = errors.New("contact: rate limiter is required")
