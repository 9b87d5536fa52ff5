package form_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/commitment/modules/contact"
	"github.com/dmitrymomot/commitment/modules/contact/form"
	"github.com/dmitrymomot/commitment/pkg/email"
	"github.com/dmitrymomot/commitment/pkg/ratelimit"
)

func testSubmission() contact.Submission {
	berlin := time.FixedZone("CEST", 2*60*60)
	return contact.Submission{
		Name:               "Jane Doe",
		Email:              "jane@example.com",
		Commitment:         "Run a half marathon under two hours",
		GoalDate:           time.Date(2026, time.June, 15, 0, 0, 0, 0, berlin),
		SuccessMeasurement: "Official race result below 2:00:00",
		CommitmentAmount:   150,
		AgeVerification:    true,
	}
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		baseURL string
		valid   bool
	}{
		{name: "https", baseURL: "https://example.com", valid: true},
		{name: "trailing slash", baseURL: "http://localhost:8080/", valid: true},
		{name: "empty", baseURL: ""},
		{name: "unsupported scheme", baseURL: "ftp://example.com"},
		{name: "missing host", baseURL: "https://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, err := form.NewClient(tt.baseURL)
			if tt.valid {
				assert.NoError(t, err)
				assert.NotNil(t, c)
				return
			}
			assert.ErrorIs(t, err, form.ErrInvalidURL)
		})
	}
}

func TestClient_Send(t *testing.T) {
	t.Parallel()

	t.Run("posts the payload", func(t *testing.T) {
		t.Parallel()

		var got map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/send", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			body, _ := io.ReadAll(r.Body)
			assert.NoError(t, json.Unmarshal(body, &got))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"msg-1"}`))
		}))
		t.Cleanup(srv.Close)

		c, err := form.NewClient(srv.URL)
		require.NoError(t, err)

		res, err := c.Send(context.Background(), testSubmission())
		require.NoError(t, err)
		assert.Equal(t, "msg-1", res.ID)

		assert.Equal(t, map[string]any{
			"name":               "Jane Doe",
			"email":              "jane@example.com",
			"commitment":         "Run a half marathon under two hours",
			"goalDate":           "2026-06-14T22:00:00.000Z",
			"successMeasurement": "Official race result below 2:00:00",
			"commitmentAmount":   float64(150),
			"ageVerification":    true,
		}, got)
	})

	tests := []struct {
		name    string
		status  int
		body    string
		message string
		details *form.ProviderDetails
	}{
		{
			name:    "rate limited",
			status:  http.StatusTooManyRequests,
			body:    `{"error":"Too many requests. Please try again in a minute."}`,
			message: "Too many requests. Please try again in a minute.",
		},
		{
			name:    "provider failure",
			status:  http.StatusInternalServerError,
			body:    `{"error":"Error sending email.","details":{"provider":"resend","code":422,"message":"domain not verified"}}`,
			message: "Error sending email.",
			details: &form.ProviderDetails{Provider: "resend", Code: 422, Message: "domain not verified"},
		},
		{
			name:    "field issues",
			status:  http.StatusBadRequest,
			body:    `{"error":[{"path":["name"],"message":"String must contain at least 2 character(s)"},{"path":["email"],"message":"Invalid email"}]}`,
			message: "String must contain at least 2 character(s) Invalid email",
		},
		{
			name:    "empty error",
			status:  http.StatusInternalServerError,
			body:    `{"error":""}`,
			message: form.FallbackMessage,
		},
		{
			name:    "no error field",
			status:  http.StatusInternalServerError,
			body:    `{}`,
			message: form.FallbackMessage,
		},
		{
			name:    "not json",
			status:  http.StatusBadGateway,
			body:    `<html>Bad Gateway</html>`,
			message: form.FallbackMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			c, err := form.NewClient(srv.URL)
			require.NoError(t, err)

			res, err := c.Send(context.Background(), testSubmission())
			assert.Nil(t, res)

			apiErr, ok := form.AsAPIError(err)
			require.True(t, ok, "expected APIError, got %v", err)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, tt.details, apiErr.Details)
		})
	}

	t.Run("invalid success body", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`ok`))
		}))
		t.Cleanup(srv.Close)

		c, err := form.NewClient(srv.URL)
		require.NoError(t, err)

		_, err = c.Send(context.Background(), testSubmission())
		assert.ErrorIs(t, err, form.ErrInvalidResponse)
	})

	t.Run("unreachable server", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		c, err := form.NewClient(url, form.WithHTTPClient(&http.Client{Timeout: time.Second}))
		require.NoError(t, err)

		_, err = c.Send(context.Background(), testSubmission())
		assert.ErrorIs(t, err, form.ErrRequestFailed)
	})
}

type mockEmailSender struct {
	mock.Mock
}

func (m *mockEmailSender) SendEmail(ctx context.Context, params email.SendEmailParams) (*email.SendResult, error) {
	args := m.Called(ctx, params)
	res, _ := args.Get(0).(*email.SendResult)
	return res, args.Error(1)
}

func TestClient_AgainstEndpoint(t *testing.T) {
	t.Parallel()

	cfg := contact.Config{
		ToEmail:      "owner@example.com",
		RateLimit:    3,
		RateWindow:   time.Minute,
		MaxBodyBytes: 64 << 10,
	}
	store := ratelimit.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })
	limiter, err := contact.NewLimiter(cfg, store)
	require.NoError(t, err)

	sender := new(mockEmailSender)
	sender.On("SendEmail", mock.Anything, mock.MatchedBy(func(p email.SendEmailParams) bool {
		return p.ReplyTo == "jane@example.com" && p.Subject == "New Commitment from Jane Doe"
	})).Return(&email.SendResult{ID: "msg-e2e"}, nil).Once()

	log := slog.New(slog.DiscardHandler)
	svc := contact.NewService(sender, contact.NewComposer(cfg.ToEmail), log)
	h, err := contact.NewHandler(cfg, svc, limiter, contact.WithLogger(log))
	require.NoError(t, err)

	srv := httptest.NewServer(contact.Router(contact.RouterOptions{Submissions: h}))
	t.Cleanup(srv.Close)

	c, err := form.NewClient(srv.URL)
	require.NoError(t, err)

	res, err := c.Send(context.Background(), testSubmission())
	require.NoError(t, err)
	assert.Equal(t, "msg-e2e", res.ID)
	sender.AssertExpectations(t)

	bad := testSubmission()
	bad.Name = "J"
	_, err = c.Send(context.Background(), bad)
	apiErr, ok := form.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "String must contain at least 2 character(s)", apiErr.Message)
}
