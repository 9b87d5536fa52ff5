package form

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/commitment/pkg/logger"
)

// Variant is the visual style of a toast.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Toast texts.
const (
	TitleSent       = "Message Sent!"
	DescriptionSent = "We've received your inquiry and will get back to you shortly."
	TitleSendFailed = "Error Sending Message"
)

// Toast is a transient notification shown after a submit attempt.
type Toast struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Variant     Variant `json:"variant"`
}

// Notifier shows toasts to the user.
type Notifier interface {
	Notify(ctx context.Context, t Toast)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, t Toast)

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, t Toast) {
	f(ctx, t)
}

// LogNotifier writes toasts to a logger. Destructive toasts are logged at
// WARN, everything else at INFO.
type LogNotifier struct {
	log *slog.Logger
}

// NewLogNotifier creates a LogNotifier. A nil logger uses slog.Default().
func NewLogNotifier(log *slog.Logger) *LogNotifier {
	if log == nil {
		log = slog.Default()
	}
	return &LogNotifier{log: log}
}

// Notify logs t.
func (n *LogNotifier) Notify(ctx context.Context, t Toast) {
	level := slog.LevelInfo
	if t.Variant == VariantDestructive {
		level = slog.LevelWarn
	}
	n.log.LogAttrs(ctx, level, t.Title,
		slog.String("description", t.Description),
		slog.String("variant", string(t.Variant)),
		logger.Component("form"),
	)
}
