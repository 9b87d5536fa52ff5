package contact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/commitment/pkg/email"
	"github.com/dmitrymomot/commitment/pkg/email/templates"
	"github.com/dmitrymomot/commitment/pkg/sanitizer"
)

// GoalDateLayout renders goal dates as dd.MM.yyyy.
const GoalDateLayout = "02.01.2006"

// EmailTag categorises submission emails at the provider.
const EmailTag = "commitment"

// subjectText keeps the submitter's name on one line.
var subjectText = sanitizer.Compose(sanitizer.RemoveControlChars, sanitizer.SingleLine)

// Composer turns a validated Submission into the notification email.
type Composer struct {
	to   string
	from string
	loc  *time.Location
}

// ComposerOption configures a Composer.
type ComposerOption func(*Composer)

// WithFrom sets the sender address. Empty keeps the provider default.
func WithFrom(from string) ComposerOption {
	return func(c *Composer) {
		c.from = from
	}
}

// WithLocation sets the timezone the goal date is displayed in.
func WithLocation(loc *time.Location) ComposerOption {
	return func(c *Composer) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// NewComposer creates a Composer addressing every email to `to`.
func NewComposer(to string, opts ...ComposerOption) *Composer {
	c := &Composer{to: to, loc: time.UTC}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose builds the email: reply-to is the submitter, the subject names
// them and the HTML body lists every field with user text escaped.
func (c *Composer) Compose(ctx context.Context, sub Submission) (email.SendEmailParams, error) {
	if sub.GoalDate.IsZero() {
		return email.SendEmailParams{}, errors.Join(ErrComposeFailed, errors.New("goal date is not set"))
	}

	body, err := templates.Render(ctx, submissionEmail(sub, c.loc))
	if err != nil {
		return email.SendEmailParams{}, errors.Join(ErrComposeFailed, err)
	}

	return email.SendEmailParams{
		From:     c.from,
		SendTo:   c.to,
		ReplyTo:  sub.Email,
		Subject:  "New Commitment from " + subjectText(sub.Name),
		BodyHTML: body,
		Tag:      EmailTag,
	}, nil
}

// FormatGoalDate renders t as dd.MM.yyyy in loc.
func FormatGoalDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(GoalDateLayout)
}

// FormatAmount renders the amount without trailing zeros, followed by €.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "€"
}

func submissionEmail(sub Submission, loc *time.Location) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<p>You have received a new commitment from your website contact form.</p>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<hr>
<p><strong>Commitment:</strong></p>
<p>%s</p>
<p><strong>Goal Date:</strong> %s</p>
<p><strong>Success Measurement:</strong></p>
<p>%s</p>
<p><strong>Commitment Amount:</strong> %s</p>
`,
			templ.EscapeString(sub.Name),
			templ.EscapeString(sub.Email),
			templ.EscapeString(sub.Commitment),
			templ.EscapeString(FormatGoalDate(sub.GoalDate, loc)),
			templ.EscapeString(sub.SuccessMeasurement),
			templ.EscapeString(FormatAmount(sub.CommitmentAmount)),
		)
		return err
	})
}
