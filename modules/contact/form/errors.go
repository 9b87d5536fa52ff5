package form

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidURL       = errors.New("form: invalid endpoint URL")
	ErrRequestFailed    = errors.New("form: request failed")
	ErrInvalidResponse  = errors.New("form: invalid response")
	ErrInvalidDate      = errors.New("form: invalid date")
	ErrInvalidDatePart  = errors.New("form: date part out of range")
	ErrSubmitInProgress = errors.New("form: submission already in progress")
	ErrSenderRequired   = errors.New("form: sender is required")
)

// APIError is a non-2xx answer of the submission endpoint.
type APIError struct {
	StatusCode int
	// Message is the text shown to the user.
	Message string
	// Details holds the provider failure, if the server reported one.
	Details *ProviderDetails
}

// ProviderDetails mirrors the details object of a failed send.
type ProviderDetails struct {
	Provider string `json:"provider"`
	Code     int64  `json:"code,omitempty"`
	Message  string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("form: server responded %d: %s", e.StatusCode, e.Message)
}

// AsAPIError extracts the endpoint failure from err, if any.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
