package contact

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/commitment/pkg/email"
	"github.com/dmitrymomot/commitment/pkg/logger"
	"github.com/dmitrymomot/commitment/pkg/sanitizer"
)

// Service delivers validated submissions by email.
type Service struct {
	sender   email.EmailSender
	composer *Composer
	log      *slog.Logger
}

// NewService wires the sender and composer. A nil logger discards output.
func NewService(sender email.EmailSender, composer *Composer, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Service{
		sender:   sender,
		composer: composer,
		log:      log,
	}
}

// Submit composes the notification and makes exactly one send attempt.
// Provider failures are returned as is; nothing is retried.
func (s *Service) Submit(ctx context.Context, sub Submission) (*email.SendResult, error) {
	params, err := s.composer.Compose(ctx, sub)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := s.sender.SendEmail(ctx, params)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "commitment email sent",
		logger.MessageID(res.ID),
		slog.String("submitter", sanitizer.MaskEmail(sub.Email)),
		logger.Duration(time.Since(start)),
		logger.Component("contact"),
		logger.Event("email_sent"),
	)
	return res, nil
}
