package email

import (
	"context"
	"errors"

	"golang.org/x/time/rate"
)

// ThrottledSender paces outbound sends with a process-wide token bucket so
// bursts of submissions stay under the provider's API rate limit.
type ThrottledSender struct {
	next    EmailSender
	limiter *rate.Limiter
}

// NewThrottledSender wraps next with a limiter allowing perSecond sends
// with the given burst. A non-positive perSecond disables pacing.
func NewThrottledSender(next EmailSender, perSecond float64, burst int) *ThrottledSender {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &ThrottledSender{
		next:    next,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// SendEmail waits for a send slot, bounded by ctx, then delegates.
func (s *ThrottledSender) SendEmail(ctx context.Context, params SendEmailParams) (*SendResult, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, errors.Join(ErrFailedToSendEmail, err)
	}
	return s.next.SendEmail(ctx, params)
}
