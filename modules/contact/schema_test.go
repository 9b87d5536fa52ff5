package contact_test

import (
	"maps"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/commitment/modules/contact"
	"github.com/dmitrymomot/commitment/pkg/validator"
)

var testNow = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

func validInput() map[string]any {
	return map[string]any{
		"name":               "Jane Doe",
		"email":              "jane@example.com",
		"commitment":         "Run a half marathon under two hours",
		"goalDate":           "2026-06-15T00:00:00.000Z",
		"successMeasurement": "Official race result below 2:00:00",
		"commitmentAmount":   float64(150),
		"ageVerification":    true,
	}
}

func with(overrides map[string]any) map[string]any {
	in := validInput()
	maps.Copy(in, overrides)
	return in
}

func without(field string) map[string]any {
	in := validInput()
	delete(in, field)
	return in
}

func TestParseSubmission_Valid(t *testing.T) {
	t.Parallel()

	sub, err := contact.ParseSubmission(validInput())
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", sub.Name)
	assert.Equal(t, "jane@example.com", sub.Email)
	assert.Equal(t, "Run a half marathon under two hours", sub.Commitment)
	assert.True(t, sub.GoalDate.Equal(time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Official race result below 2:00:00", sub.SuccessMeasurement)
	assert.Equal(t, 150.0, sub.CommitmentAmount)
	assert.True(t, sub.AgeVerification)
}

func TestParseSubmission_AmountCoercion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		amount   any
		expected float64
		message  string
	}{
		{name: "numeric string", amount: "250", expected: 250},
		{name: "padded numeric string", amount: " 99.5 ", expected: 99.5},
		{name: "lower bound", amount: float64(20), expected: 20},
		{name: "upper bound", amount: "500", expected: 500},
		{name: "non numeric string", amount: "abc", message: "Expected number, received nan"},
		{name: "empty string", amount: "", message: "Expected number, received nan"},
		{name: "infinity string", amount: "Inf", message: "Expected number, received nan"},
		{name: "boolean", amount: true, message: "Expected number, received boolean"},
		{name: "below minimum", amount: float64(19), message: "Number must be greater than or equal to 20"},
		{name: "above maximum", amount: float64(600), message: "Number must be less than or equal to 500"},
		{name: "string above maximum", amount: "500.01", message: "Number must be less than or equal to 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sub, err := contact.ParseSubmission(with(map[string]any{"commitmentAmount": tt.amount}))
			if tt.message == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, sub.CommitmentAmount)
				return
			}

			errs := validator.ExtractValidationErrors(err)
			require.Len(t, errs, 1)
			assert.Equal(t, contact.FieldCommitmentAmount, errs[0].Field)
			assert.Equal(t, tt.message, errs[0].Message)
		})
	}
}

func TestParseSubmission_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   map[string]any
		field   string
		message string
	}{
		{name: "short name", input: with(map[string]any{"name": "A"}), field: "name", message: "String must contain at least 2 character(s)"},
		{name: "missing name", input: without("name"), field: "name", message: "Required"},
		{name: "null name", input: with(map[string]any{"name": nil}), field: "name", message: "Required"},
		{name: "numeric name", input: with(map[string]any{"name": float64(42)}), field: "name", message: "Expected string, received number"},
		{name: "invalid email", input: with(map[string]any{"email": "jane@"}), field: "email", message: "Invalid email"},
		{name: "email with display name", input: with(map[string]any{"email": "Jane <jane@example.com>"}), field: "email", message: "Invalid email"},
		{name: "short commitment", input: with(map[string]any{"commitment": "run"}), field: "commitment", message: "String must contain at least 10 character(s)"},
		{name: "plain date", input: with(map[string]any{"goalDate": "2026-06-15"}), field: "goalDate", message: "Invalid datetime"},
		{name: "garbage date", input: with(map[string]any{"goalDate": "next friday"}), field: "goalDate", message: "Invalid datetime"},
		{name: "numeric date", input: with(map[string]any{"goalDate": float64(1767571200000)}), field: "goalDate", message: "Expected string, received number"},
		{name: "missing date", input: without("goalDate"), field: "goalDate", message: "Required"},
		{name: "short measurement", input: with(map[string]any{"successMeasurement": "done"}), field: "successMeasurement", message: "String must contain at least 10 character(s)"},
		{name: "age false", input: with(map[string]any{"ageVerification": false}), field: "ageVerification", message: "Invalid literal value, expected true"},
		{name: "age as string", input: with(map[string]any{"ageVerification": "true"}), field: "ageVerification", message: "Invalid literal value, expected true"},
		{name: "missing age", input: without("ageVerification"), field: "ageVerification", message: "Required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sub, err := contact.ParseSubmission(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, validator.ErrValidationFailed)
			assert.Equal(t, contact.Submission{}, sub)

			errs := validator.ExtractValidationErrors(err)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.field, errs[0].Field)
			assert.Equal(t, tt.message, errs[0].Message)
		})
	}
}

func TestParseSubmission_ReportsEveryFieldInOrder(t *testing.T) {
	t.Parallel()

	_, err := contact.ParseSubmission(map[string]any{
		"ageVerification":  false,
		"name":             "A",
		"commitmentAmount": "abc",
	})

	errs := validator.ExtractValidationErrors(err)
	assert.Equal(t, []string{
		contact.FieldName,
		contact.FieldEmail,
		contact.FieldCommitment,
		contact.FieldGoalDate,
		contact.FieldSuccessMeasurement,
		contact.FieldCommitmentAmount,
		contact.FieldAgeVerification,
	}, errs.Fields())

	_, err = contact.ParseSubmission(nil)
	assert.Len(t, validator.ExtractValidationErrors(err), 7)
}

func TestParseSubmission_GoalDateBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		goalDate string
		message  string
	}{
		{name: "tomorrow", goalDate: "2026-03-02T00:00:00Z"},
		{name: "later today", goalDate: "2026-03-01T18:00:00Z"},
		{name: "exactly one year ahead", goalDate: "2027-03-01T12:00:00Z"},
		{name: "start of today", goalDate: "2026-03-01T00:00:00Z", message: "The date must be in the future."},
		{name: "yesterday", goalDate: "2026-02-28T10:00:00Z", message: "The date must be in the future."},
		{name: "just over a year", goalDate: "2027-03-01T12:00:01Z", message: "The date must be within one year from now."},
		{name: "far future", goalDate: "2030-01-01T00:00:00Z", message: "The date must be within one year from now."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := with(map[string]any{"goalDate": tt.goalDate})

			_, err := contact.ParseSubmission(in)
			require.NoError(t, err, "without bounds any well-formed timestamp passes")

			_, err = contact.ParseSubmission(in, contact.WithGoalDateBounds(testNow, time.UTC))
			if tt.message == "" {
				assert.NoError(t, err)
				return
			}
			errs := validator.ExtractValidationErrors(err)
			require.Len(t, errs, 1)
			assert.Equal(t, contact.FieldGoalDate, errs[0].Field)
			assert.Equal(t, tt.message, errs[0].Message)
		})
	}
}

func TestParseSubmission_GoalDateBoundsUseLocation(t *testing.T) {
	t.Parallel()

	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 2026-03-01 12:00 UTC is already March 1st 21:00 in Tokyo; 15:30 UTC on
	// Feb 28 is March 1st 00:30 there, so it counts as today.
	in := with(map[string]any{"goalDate": "2026-02-28T15:30:00Z"})

	_, err = contact.ParseSubmission(in, contact.WithGoalDateBounds(testNow, tokyo))
	assert.NoError(t, err)

	_, err = contact.ParseSubmission(in, contact.WithGoalDateBounds(testNow, time.UTC))
	assert.Error(t, err)
}

func TestValidate_FormMessages(t *testing.T) {
	t.Parallel()

	sub := contact.Submission{
		Name:               "J",
		Email:              "not-an-email",
		Commitment:         "short",
		SuccessMeasurement: "short",
		CommitmentAmount:   501,
		AgeVerification:    false,
	}

	err := contact.Validate(sub,
		contact.WithMessages(contact.FormMessages),
		contact.WithGoalDateBounds(testNow, time.UTC),
	)
	errs := validator.ExtractValidationErrors(err)
	require.Len(t, errs, 7)

	expected := map[string]string{
		contact.FieldName:               "Name must be at least 2 characters.",
		contact.FieldEmail:              "Please enter a valid email.",
		contact.FieldCommitment:         "Commitment must be at least 10 characters.",
		contact.FieldGoalDate:           "A goal date is required.",
		contact.FieldSuccessMeasurement: "Success measurement must be at least 10 characters.",
		contact.FieldCommitmentAmount:   "Commitment cannot exceed 500€.",
		contact.FieldAgeVerification:    "You must confirm you are 18 or older.",
	}
	for field, msg := range expected {
		assert.Equal(t, []string{msg}, errs.Get(field), field)
	}
}
