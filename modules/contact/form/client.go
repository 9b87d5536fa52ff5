package form

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/commitment/modules/contact"
	"github.com/dmitrymomot/commitment/pkg/email"
)

// FallbackMessage is shown when the server gives no usable error text.
const FallbackMessage = "Something went wrong. Please try again."

// GoalDateLayout is the wire format of the goal date: UTC with milliseconds.
const GoalDateLayout = "2006-01-02T15:04:05.000Z"

// maxResponseSize caps how much of a response body is read.
const maxResponseSize = 64 << 10

// Sender delivers a submission to the endpoint.
type Sender interface {
	Send(ctx context.Context, sub contact.Submission) (*email.SendResult, error)
}

// Client posts submissions to POST {baseURL}/api/send. One attempt per
// call; nothing is retried.
type Client struct {
	endpoint string
	client   *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// NewClient creates a client for the site at baseURL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: only http and https schemes are supported", ErrInvalidURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: host is required", ErrInvalidURL)
	}

	c := &Client{
		endpoint: u.JoinPath("api", "send").String(),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type payload struct {
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	Commitment         string  `json:"commitment"`
	GoalDate           string  `json:"goalDate"`
	SuccessMeasurement string  `json:"successMeasurement"`
	CommitmentAmount   float64 `json:"commitmentAmount"`
	AgeVerification    bool    `json:"ageVerification"`
}

func newPayload(sub contact.Submission) payload {
	return payload{
		Name:               sub.Name,
		Email:              sub.Email,
		Commitment:         sub.Commitment,
		GoalDate:           sub.GoalDate.UTC().Format(GoalDateLayout),
		SuccessMeasurement: sub.SuccessMeasurement,
		CommitmentAmount:   sub.CommitmentAmount,
		AgeVerification:    sub.AgeVerification,
	}
}

type responseBody struct {
	ID      string           `json:"id"`
	Error   json.RawMessage  `json:"error"`
	Details *ProviderDetails `json:"details"`
}

// Send posts sub as JSON. Non-2xx answers are returned as *APIError.
func (c *Client) Send(ctx context.Context, sub contact.Submission) (*email.SendResult, error) {
	body, err := json.Marshal(newPayload(sub))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	var result responseBody
	decodeErr := json.Unmarshal(raw, &result)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: FallbackMessage}
		if decodeErr == nil {
			apiErr.Message = errorMessage(result.Error)
			apiErr.Details = result.Details
		}
		return nil, apiErr
	}

	if decodeErr != nil {
		return nil, errors.Join(ErrInvalidResponse, decodeErr)
	}
	return &email.SendResult{ID: result.ID}, nil
}

// errorMessage turns the error field into display text. A string is used
// as is; a list of field issues yields their messages.
func errorMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return FallbackMessage
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if text == "" {
			return FallbackMessage
		}
		return text
	}

	var issues []contact.Issue
	if err := json.Unmarshal(raw, &issues); err == nil && len(issues) > 0 {
		msgs := make([]string, 0, len(issues))
		for _, is := range issues {
			if is.Message != "" {
				msgs = append(msgs, is.Message)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, " ")
		}
	}
	return FallbackMessage
}
