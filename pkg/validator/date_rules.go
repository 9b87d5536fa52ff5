package validator

import (
	"fmt"
	"time"
)

// RequiredTime validates that a time value is set.
func RequiredTime(field string, value time.Time) Rule {
	return Rule{
		Check: func() bool {
			return !value.IsZero()
		},
		Error: ValidationError{
			Field:          field,
			Message:        "field is required",
			TranslationKey: "validation.required",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// DateAfter validates that value is strictly after the given instant.
func DateAfter(field string, value time.Time, after time.Time) Rule {
	return Rule{
		Check: func() bool {
			return value.After(after)
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("date must be after %s", after.Format(time.DateOnly)),
			TranslationKey: "validation.date_after",
			TranslationValues: map[string]any{
				"field": field,
				"after": after.Format(time.DateOnly),
			},
		},
	}
}

// DateNotAfter validates that value is at or before the given instant.
func DateNotAfter(field string, value time.Time, limit time.Time) Rule {
	return Rule{
		Check: func() bool {
			return !value.After(limit)
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("date must not be after %s", limit.Format(time.DateOnly)),
			TranslationKey: "validation.date_not_after",
			TranslationValues: map[string]any{
				"field": field,
				"limit": limit.Format(time.DateOnly),
			},
		},
	}
}
