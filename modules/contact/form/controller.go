package form

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrymomot/commitment/modules/contact"
	"github.com/dmitrymomot/commitment/pkg/sanitizer"
	"github.com/dmitrymomot/commitment/pkg/validator"
)

// DefaultAmount is the initial commitment amount.
const DefaultAmount = contact.MinAmount

// DateParts are the three date selects. Month is zero based; nil means
// nothing is selected.
type DateParts struct {
	Day   *int
	Month *int
	Year  *int
}

// Option is one entry of a select.
type Option struct {
	Value int
	Label string
}

// Controller holds the state of the commitment form and submits it.
// It is safe for concurrent use.
type Controller struct {
	sender   Sender
	notifier Notifier
	now      func() time.Time
	loc      *time.Location

	mu          sync.Mutex
	sub         contact.Submission
	amountInput string
	parts       DateParts
	errors      map[string]string
	submitting  bool
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithNotifier sets where toasts go. Defaults to a LogNotifier.
func WithNotifier(n Notifier) ControllerOption {
	return func(c *Controller) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithClock overrides the time source for date options and bounds.
func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLocation sets the timezone dates are picked in. Defaults to time.Local.
func WithLocation(loc *time.Location) ControllerOption {
	return func(c *Controller) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// NewController creates an empty form that submits through sender.
func NewController(sender Sender, opts ...ControllerOption) (*Controller, error) {
	if sender == nil {
		return nil, ErrSenderRequired
	}

	c := &Controller{
		sender: sender,
		now:    time.Now,
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.notifier == nil {
		c.notifier = NewLogNotifier(slog.Default())
	}
	c.resetLocked()
	return c, nil
}

func (c *Controller) resetLocked() {
	c.sub = contact.Submission{CommitmentAmount: DefaultAmount}
	c.amountInput = formatAmount(DefaultAmount)
	c.parts = DateParts{}
	c.errors = make(map[string]string)
}

// Reset clears every field, the date selects and all errors.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

// SetName sets the submitter name.
func (c *Controller) SetName(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sub.Name = v
}

// SetEmail sets the submitter email address.
func (c *Controller) SetEmail(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sub.Email = v
}

// SetCommitment sets the commitment text.
func (c *Controller) SetCommitment(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sub.Commitment = v
}

// SetSuccessMeasurement sets how success will be measured.
func (c *Controller) SetSuccessMeasurement(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sub.SuccessMeasurement = v
}

// SetAgeVerification records the age confirmation checkbox.
func (c *Controller) SetAgeVerification(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sub.AgeVerification = v
}

// SetAmount sets the amount from the slider.
func (c *Controller) SetAmount(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sub.CommitmentAmount = v
	c.amountInput = formatAmount(v)
}

// SetAmountInput takes the raw text of the amount box. An empty box counts
// as 0; text that is not a number is ignored.
func (c *Controller) SetAmountInput(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s == "" {
		c.amountInput = ""
		c.sub.CommitmentAmount = 0
		return
	}
	v, ok := parseAmount(s)
	if !ok {
		return
	}
	c.amountInput = s
	c.sub.CommitmentAmount = v
}

// BlurAmount clamps the amount box when it loses focus: empty, non-numeric
// and values below the minimum become the minimum, values above the maximum
// become the maximum.
func (c *Controller) BlurAmount() {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := parseAmount(c.amountInput)
	if !ok {
		v = contact.MinAmount
	}
	v = sanitizer.Clamp(v, contact.MinAmount, contact.MaxAmount)
	c.sub.CommitmentAmount = v
	c.amountInput = formatAmount(v)
}

// SetDay selects the day of month, 1 to 31.
func (c *Controller) SetDay(day int) error {
	if day < 1 || day > 31 {
		return ErrInvalidDatePart
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.parts.Day = &day
	return c.deriveGoalDateLocked()
}

// SetMonth selects the month, 0 for January to 11 for December.
func (c *Controller) SetMonth(month int) error {
	if month < 0 || month > 11 {
		return ErrInvalidDatePart
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.parts.Month = &month
	return c.deriveGoalDateLocked()
}

// SetYear selects one of YearOptions.
func (c *Controller) SetYear(year int) error {
	current := c.now().In(c.loc).Year()
	if year != current && year != current+1 {
		return ErrInvalidDatePart
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.parts.Year = &year
	return c.deriveGoalDateLocked()
}

// deriveGoalDateLocked merges complete date parts into the goal date.
// Impossible combinations such as 30 February set the field error and
// leave the goal date unchanged.
func (c *Controller) deriveGoalDateLocked() error {
	d, complete, valid := c.partsDateLocked()
	if !complete {
		return nil
	}
	if !valid {
		c.errors[contact.FieldGoalDate] = contact.FormMessages.GoalDateInvalid
		return ErrInvalidDate
	}

	c.sub.GoalDate = d
	errs := validator.ExtractValidationErrors(c.validateLocked())
	if msgs := errs.Get(contact.FieldGoalDate); len(msgs) > 0 {
		c.errors[contact.FieldGoalDate] = msgs[0]
	} else {
		delete(c.errors, contact.FieldGoalDate)
	}
	return nil
}

func (c *Controller) partsDateLocked() (d time.Time, complete, valid bool) {
	p := c.parts
	if p.Day == nil || p.Month == nil || p.Year == nil {
		return time.Time{}, false, false
	}
	d = time.Date(*p.Year, time.Month(*p.Month+1), *p.Day, 0, 0, 0, 0, c.loc)
	valid = d.Year() == *p.Year && int(d.Month())-1 == *p.Month && d.Day() == *p.Day
	return d, true, valid
}

// DayOptions lists the days of the selected month, or 31 days while the
// month or year is not selected.
func (c *Controller) DayOptions() []int {
	c.mu.Lock()
	p := c.parts
	c.mu.Unlock()

	n := 31
	if p.Year != nil && p.Month != nil {
		n = time.Date(*p.Year, time.Month(*p.Month+2), 0, 0, 0, 0, 0, time.UTC).Day()
	}
	days := make([]int, n)
	for i := range days {
		days[i] = i + 1
	}
	return days
}

// MonthOptions lists the months with short English labels.
func (c *Controller) MonthOptions() []Option {
	months := make([]Option, 12)
	for i := range months {
		months[i] = Option{Value: i, Label: time.Month(i + 1).String()[:3]}
	}
	return months
}

// YearOptions lists the current and the next year.
func (c *Controller) YearOptions() []int {
	year := c.now().In(c.loc).Year()
	return []int{year, year + 1}
}

// Values returns the current field values.
func (c *Controller) Values() contact.Submission {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sub
}

// AmountInput returns the text of the amount box.
func (c *Controller) AmountInput() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.amountInput
}

// DateParts returns the selected date parts.
func (c *Controller) DateParts() DateParts {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.parts
}

// Errors returns the field errors shown under the inputs.
func (c *Controller) Errors() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return maps.Clone(c.errors)
}

// Submitting reports whether a submission is in flight; the submit button
// is disabled meanwhile.
func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// Validate checks every field and replaces the field errors.
func (c *Controller) Validate() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applyValidationLocked()
}

// validateLocked checks the form. Selects describing an impossible date
// win over the last valid goal date.
func (c *Controller) validateLocked() error {
	sub := c.sub
	msgs := contact.FormMessages
	if _, complete, valid := c.partsDateLocked(); complete && !valid {
		sub.GoalDate = time.Time{}
		msgs.GoalDateRequired = msgs.GoalDateInvalid
	}
	return contact.Validate(sub,
		contact.WithMessages(msgs),
		contact.WithGoalDateBounds(c.now(), c.loc),
	)
}

func (c *Controller) applyValidationLocked() error {
	err := c.validateLocked()
	c.errors = make(map[string]string)
	for _, e := range validator.ExtractValidationErrors(err) {
		c.errors[e.Field] = e.Message
	}
	return err
}

// Submit validates the form and sends it. Success resets the form and
// shows a confirmation toast; a failed send shows the server's message.
// The submitting flag is cleared on every path.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return ErrSubmitInProgress
	}
	c.submitting = true
	err := c.applyValidationLocked()
	sub := c.sub
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	if err != nil {
		return err
	}

	if _, err := c.sender.Send(ctx, sub); err != nil {
		c.notifier.Notify(ctx, Toast{
			Title:       TitleSendFailed,
			Description: failureMessage(err),
			Variant:     VariantDestructive,
		})
		return err
	}

	c.Reset()
	c.notifier.Notify(ctx, Toast{
		Title:       TitleSent,
		Description: DescriptionSent,
		Variant:     VariantDefault,
	})
	return nil
}

func failureMessage(err error) string {
	if apiErr, ok := AsAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "The request timed out. Please try again."
	}
	return FallbackMessage
}

func parseAmount(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
