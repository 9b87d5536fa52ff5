package email_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/commitment/pkg/email"
)

func postmarkConfig() email.Config {
	return email.Config{
		Provider:             email.ProviderPostmark,
		PostmarkServerToken:  "test-server-token",
		PostmarkAccountToken: "test-account-token",
		SenderEmail:          "sender@example.com",
	}
}

func TestNewPostmarkClient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*email.Config)
		errMsg string
	}{
		{name: "valid tokens", modify: func(*email.Config) {}},
		{name: "empty server token", modify: func(c *email.Config) { c.PostmarkServerToken = "" }, errMsg: "PostmarkServerToken is required"},
		{name: "empty account token", modify: func(c *email.Config) { c.PostmarkAccountToken = "" }, errMsg: "PostmarkAccountToken is required"},
		{name: "missing sender email", modify: func(c *email.Config) { c.SenderEmail = "" }, errMsg: "SenderEmail is required"},
		{name: "invalid sender email", modify: func(c *email.Config) { c.SenderEmail = "invalid-email" }, errMsg: "SenderEmail must be a valid email address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := postmarkConfig()
			tt.modify(&cfg)

			client, err := email.NewPostmarkClient(cfg)
			if tt.errMsg == "" {
				require.NoError(t, err)
				assert.NotNil(t, client)
				return
			}
			assert.Nil(t, client)
			assert.ErrorIs(t, err, email.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestPostmarkClient_SendEmail(t *testing.T) {
	t.Parallel()

	t.Run("sends message and returns message id", func(t *testing.T) {
		t.Parallel()

		var got map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/email", r.URL.Path)
			assert.Equal(t, "test-server-token", r.Header.Get("X-Postmark-Server-Token"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"To":"owner@example.com","SubmittedAt":"2026-03-01T12:00:00Z","MessageID":"b7bc2f4a-e38e-4336-af7d-e6c392c2f817","ErrorCode":0,"Message":"OK"}`))
		}))
		t.Cleanup(srv.Close)

		client, err := email.NewPostmarkClient(postmarkConfig(), email.WithPostmarkBaseURL(srv.URL))
		require.NoError(t, err)

		res, err := client.SendEmail(context.Background(), validParams())
		require.NoError(t, err)
		assert.Equal(t, "b7bc2f4a-e38e-4336-af7d-e6c392c2f817", res.ID)

		assert.Equal(t, "sender@example.com", got["From"])
		assert.Equal(t, "owner@example.com", got["To"])
		assert.Equal(t, "jane@example.com", got["ReplyTo"])
		assert.Equal(t, "New Commitment from Jane", got["Subject"])
		assert.Equal(t, "<p>Test body</p>", got["HtmlBody"])
	})

	t.Run("provider rejection becomes ProviderError", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"ErrorCode":300,"Message":"Invalid email request"}`))
		}))
		t.Cleanup(srv.Close)

		client, err := email.NewPostmarkClient(postmarkConfig(), email.WithPostmarkBaseURL(srv.URL))
		require.NoError(t, err)

		res, err := client.SendEmail(context.Background(), validParams())
		assert.Nil(t, res)
		assert.ErrorIs(t, err, email.ErrFailedToSendEmail)

		pe, ok := email.AsProviderError(err)
		require.True(t, ok)
		assert.Equal(t, email.ProviderPostmark, pe.Provider)
		assert.Equal(t, int64(300), pe.Code)
		assert.Equal(t, "Invalid email request", pe.Message)
	})

	t.Run("non-2xx response keeps provider code and message", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"ErrorCode":406,"Message":"You tried to send to a recipient that has been marked as inactive."}`))
		}))
		t.Cleanup(srv.Close)

		client, err := email.NewPostmarkClient(postmarkConfig(), email.WithPostmarkBaseURL(srv.URL))
		require.NoError(t, err)

		res, err := client.SendEmail(context.Background(), validParams())
		assert.Nil(t, res)
		assert.ErrorIs(t, err, email.ErrFailedToSendEmail)

		pe, ok := email.AsProviderError(err)
		require.True(t, ok)
		assert.Equal(t, int64(406), pe.Code)
		assert.Equal(t, "You tried to send to a recipient that has been marked as inactive.", pe.Message)
	})

	t.Run("invalid params", func(t *testing.T) {
		t.Parallel()

		client, err := email.NewPostmarkClient(postmarkConfig())
		require.NoError(t, err)

		params := validParams()
		params.Subject = ""
		_, err = client.SendEmail(context.Background(), params)
		assert.ErrorIs(t, err, email.ErrInvalidParams)
	})
}
