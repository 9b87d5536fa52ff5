package contact_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/commitment/modules/contact"
	"github.com/dmitrymomot/commitment/pkg/email"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) SendEmail(ctx context.Context, params email.SendEmailParams) (*email.SendResult, error) {
	args := m.Called(ctx, params)
	res, _ := args.Get(0).(*email.SendResult)
	return res, args.Error(1)
}

func TestService_Submit(t *testing.T) {
	t.Parallel()

	t.Run("sends once and returns the provider id", func(t *testing.T) {
		t.Parallel()

		sender := new(mockSender)
		sender.On("SendEmail", mock.Anything, mock.MatchedBy(func(p email.SendEmailParams) bool {
			return p.SendTo == "owner@example.com" && p.ReplyTo == "jane@example.com"
		})).Return(&email.SendResult{ID: "msg-1"}, nil).Once()

		svc := contact.NewService(sender, contact.NewComposer("owner@example.com"), nil)

		res, err := svc.Submit(context.Background(), validSubmission())
		require.NoError(t, err)
		assert.Equal(t, "msg-1", res.ID)
		sender.AssertExpectations(t)
	})

	t.Run("provider failure is returned without retry", func(t *testing.T) {
		t.Parallel()

		providerErr := &email.ProviderError{Provider: "resend", Code: 422, Message: "domain not verified"}
		sender := new(mockSender)
		sender.On("SendEmail", mock.Anything, mock.Anything).Return(nil, providerErr).Once()

		svc := contact.NewService(sender, contact.NewComposer("owner@example.com"), nil)

		res, err := svc.Submit(context.Background(), validSubmission())
		assert.Nil(t, res)
		assert.ErrorIs(t, err, email.ErrFailedToSendEmail)

		pe, ok := email.AsProviderError(err)
		require.True(t, ok)
		assert.Equal(t, providerErr, pe)
		sender.AssertNumberOfCalls(t, "SendEmail", 1)
	})

	t.Run("compose failure skips the send", func(t *testing.T) {
		t.Parallel()

		sender := new(mockSender)
		svc := contact.NewService(sender, contact.NewComposer("owner@example.com"), nil)

		sub := validSubmission()
		sub.GoalDate = time.Time{}

		_, err := svc.Submit(context.Background(), sub)
		assert.ErrorIs(t, err, contact.ErrComposeFailed)
		sender.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
	})

	t.Run("timeout is returned as is", func(t *testing.T) {
		t.Parallel()

		sender := new(mockSender)
		sender.On("SendEmail", mock.Anything, mock.Anything).
			Return(nil, errors.Join(email.ErrFailedToSendEmail, context.DeadlineExceeded)).Once()

		svc := contact.NewService(sender, contact.NewComposer("owner@example.com"), nil)

		_, err := svc.Submit(context.Background(), validSubmission())
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
	})
}
