package contact

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/commitment/pkg/validator"
)

// JSON field names of a submission.
const (
	FieldName               = "name"
	FieldEmail              = "email"
	FieldCommitment         = "commitment"
	FieldGoalDate           = "goalDate"
	FieldSuccessMeasurement = "successMeasurement"
	FieldCommitmentAmount   = "commitmentAmount"
	FieldAgeVerification    = "ageVerification"
)

// Field constraints.
const (
	MinNameLength        = 2
	MinCommitmentLength  = 10
	MinMeasurementLength = 10
	MinAmount            = 20.0
	MaxAmount            = 500.0
)

// Submission is a fully validated commitment form.
type Submission struct {
	Name               string
	Email              string
	Commitment         string
	GoalDate           time.Time
	SuccessMeasurement string
	CommitmentAmount   float64
	AgeVerification    bool
}

// Messages holds the human readable text for every rule.
type Messages struct {
	Required            string
	NameTooShort        string
	InvalidEmail        string
	CommitmentTooShort  string
	GoalDateRequired    string
	GoalDateInvalid     string
	GoalDateNotFuture   string
	GoalDateTooFar      string
	MeasurementTooShort string
	AmountNotNumber     string
	AmountTooLow        string
	AmountTooHigh       string
	AgeNotConfirmed     string
}

// APIMessages are reported by POST /api/send.
var APIMessages = Messages{
	Required:            "Required",
	NameTooShort:        fmt.Sprintf("String must contain at least %d character(s)", MinNameLength),
	InvalidEmail:        "Invalid email",
	CommitmentTooShort:  fmt.Sprintf("String must contain at least %d character(s)", MinCommitmentLength),
	GoalDateRequired:    "Required",
	GoalDateInvalid:     "Invalid datetime",
	GoalDateNotFuture:   "The date must be in the future.",
	GoalDateTooFar:      "The date must be within one year from now.",
	MeasurementTooShort: fmt.Sprintf("String must contain at least %d character(s)", MinMeasurementLength),
	AmountNotNumber:     "Expected number, received nan",
	AmountTooLow:        "Number must be greater than or equal to 20",
	AmountTooHigh:       "Number must be less than or equal to 500",
	AgeNotConfirmed:     "Invalid literal value, expected true",
}

// FormMessages are shown next to the fields of the commitment form.
var FormMessages = Messages{
	Required:            "This field is required.",
	NameTooShort:        "Name must be at least 2 characters.",
	InvalidEmail:        "Please enter a valid email.",
	CommitmentTooShort:  "Commitment must be at least 10 characters.",
	GoalDateRequired:    "A goal date is required.",
	GoalDateInvalid:     "The selected date is invalid.",
	GoalDateNotFuture:   "The date must be in the future.",
	GoalDateTooFar:      "The date must be within one year from now.",
	MeasurementTooShort: "Success measurement must be at least 10 characters.",
	AmountNotNumber:     "Commitment must be at least 20€.",
	AmountTooLow:        "Commitment must be at least 20€.",
	AmountTooHigh:       "Commitment cannot exceed 500€.",
	AgeNotConfirmed:     "You must confirm you are 18 or older.",
}

// SchemaOption configures submission validation.
type SchemaOption func(*schema)

type schema struct {
	messages  Messages
	boundsSet bool
	now       time.Time
	loc       *time.Location
}

// WithMessages replaces APIMessages.
func WithMessages(m Messages) SchemaOption {
	return func(s *schema) {
		s.messages = m
	}
}

// WithGoalDateBounds requires the goal date to fall after the start of the
// current day in loc and no later than one year after now.
func WithGoalDateBounds(now time.Time, loc *time.Location) SchemaOption {
	return func(s *schema) {
		if loc == nil {
			loc = time.UTC
		}
		s.boundsSet = true
		s.now = now.In(loc)
		s.loc = loc
	}
}

func newSchema(opts []SchemaOption) *schema {
	s := &schema{messages: APIMessages}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ParseSubmission decodes an arbitrary JSON object into a Submission.
// Text fields must be strings, the amount may be a number or a numeric
// string, the goal date must be an RFC 3339 timestamp and ageVerification
// must be the literal true. Every violation is reported as a
// validator.ValidationErrors in field order, at most one per field.
func ParseSubmission(input map[string]any, opts ...SchemaOption) (Submission, error) {
	s := newSchema(opts)
	m := s.messages

	var (
		sub   Submission
		rules []validator.Rule
	)

	name, ok, msg := stringField(input, FieldName, m)
	sub.Name = name
	rules = append(rules, typeRule(FieldName, ok, msg))

	email, ok, msg := stringField(input, FieldEmail, m)
	sub.Email = email
	rules = append(rules, typeRule(FieldEmail, ok, msg))

	commitment, ok, msg := stringField(input, FieldCommitment, m)
	sub.Commitment = commitment
	rules = append(rules, typeRule(FieldCommitment, ok, msg))

	goalDate, ok, msg := dateField(input, FieldGoalDate, m)
	sub.GoalDate = goalDate
	rules = append(rules, typeRule(FieldGoalDate, ok, msg))

	measurement, ok, msg := stringField(input, FieldSuccessMeasurement, m)
	sub.SuccessMeasurement = measurement
	rules = append(rules, typeRule(FieldSuccessMeasurement, ok, msg))

	amount, ok, msg := amountField(input, FieldCommitmentAmount, m)
	sub.CommitmentAmount = amount
	rules = append(rules, typeRule(FieldCommitmentAmount, ok, msg))

	age, ok, msg := literalTrueField(input, FieldAgeVerification, m)
	sub.AgeVerification = age
	rules = append(rules, typeRule(FieldAgeVerification, ok, msg))

	// Type failures come first per field, so Apply skips the value rules
	// for fields that could not be decoded.
	rules = append(rules, s.rules(sub)...)
	if err := validator.Apply(orderByField(rules)...); err != nil {
		return Submission{}, err
	}
	return sub, nil
}

// Validate checks an already typed Submission, e.g. the state of the form
// before it is sent.
func Validate(sub Submission, opts ...SchemaOption) error {
	s := newSchema(opts)
	return validator.Apply(orderByField(s.rules(sub))...)
}

func (s *schema) rules(sub Submission) []validator.Rule {
	m := s.messages
	rules := []validator.Rule{
		validator.MinLen(FieldName, sub.Name, MinNameLength).WithMessage(m.NameTooShort),
		validator.ValidEmail(FieldEmail, sub.Email).WithMessage(m.InvalidEmail),
		validator.MinLen(FieldCommitment, sub.Commitment, MinCommitmentLength).WithMessage(m.CommitmentTooShort),
		validator.RequiredTime(FieldGoalDate, sub.GoalDate).WithMessage(m.GoalDateRequired),
		validator.MinLen(FieldSuccessMeasurement, sub.SuccessMeasurement, MinMeasurementLength).WithMessage(m.MeasurementTooShort),
		validator.Finite(FieldCommitmentAmount, sub.CommitmentAmount).WithMessage(m.AmountNotNumber),
		validator.MinNum(FieldCommitmentAmount, sub.CommitmentAmount, MinAmount).WithMessage(m.AmountTooLow),
		validator.MaxNum(FieldCommitmentAmount, sub.CommitmentAmount, MaxAmount).WithMessage(m.AmountTooHigh),
		validator.Equal(FieldAgeVerification, sub.AgeVerification, true).WithMessage(m.AgeNotConfirmed),
	}

	if s.boundsSet {
		startOfToday := time.Date(s.now.Year(), s.now.Month(), s.now.Day(), 0, 0, 0, 0, s.loc)
		rules = append(rules,
			validator.DateAfter(FieldGoalDate, sub.GoalDate, startOfToday).WithMessage(m.GoalDateNotFuture),
			validator.DateNotAfter(FieldGoalDate, sub.GoalDate, s.now.AddDate(1, 0, 0)).WithMessage(m.GoalDateTooFar),
		)
	}
	return rules
}

var fieldOrder = []string{
	FieldName,
	FieldEmail,
	FieldCommitment,
	FieldGoalDate,
	FieldSuccessMeasurement,
	FieldCommitmentAmount,
	FieldAgeVerification,
}

// orderByField groups rules by field, keeping their relative order.
func orderByField(rules []validator.Rule) []validator.Rule {
	ordered := make([]validator.Rule, 0, len(rules))
	for _, field := range fieldOrder {
		for _, r := range rules {
			if r.Error.Field == field {
				ordered = append(ordered, r)
			}
		}
	}
	return ordered
}

func typeRule(field string, ok bool, msg string) validator.Rule {
	return validator.Rule{
		Check: func() bool { return ok },
		Error: validator.ValidationError{
			Field:          field,
			Message:        msg,
			TranslationKey: "validation.type",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

func stringField(input map[string]any, field string, m Messages) (string, bool, string) {
	raw, present := input[field]
	if !present || raw == nil {
		return "", false, m.Required
	}
	s, ok := raw.(string)
	if !ok {
		return "", false, expected("string", raw)
	}
	return s, true, ""
}

func dateField(input map[string]any, field string, m Messages) (time.Time, bool, string) {
	raw, present := input[field]
	if !present || raw == nil {
		return time.Time{}, false, m.GoalDateRequired
	}
	s, ok := raw.(string)
	if !ok {
		return time.Time{}, false, expected("string", raw)
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false, m.GoalDateInvalid
	}
	return t, true, ""
}

// amountField accepts JSON numbers and numeric strings.
func amountField(input map[string]any, field string, m Messages) (float64, bool, string) {
	raw, present := input[field]
	if !present || raw == nil {
		return 0, false, m.Required
	}
	switch v := raw.(type) {
	case float64:
		return v, true, ""
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false, m.AmountNotNumber
		}
		return f, true, ""
	default:
		return 0, false, expected("number", raw)
	}
}

func literalTrueField(input map[string]any, field string, m Messages) (bool, bool, string) {
	raw, present := input[field]
	if !present || raw == nil {
		return false, false, m.Required
	}
	b, ok := raw.(bool)
	if !ok || !b {
		return false, false, m.AgeNotConfirmed
	}
	return true, true, ""
}

func expected(want string, got any) string {
	return fmt.Sprintf("Expected %s, received %s", want, jsonType(got))
}

func jsonType(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}
