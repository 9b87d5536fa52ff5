package validator

import (
	"fmt"
	"math"
)

// MinNum validates that a numeric value is greater than or equal to the minimum.
func MinNum[T Numeric](field string, value T, min T) Rule {
	return Rule{
		Check: func() bool {
			return value >= min
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be at least %v", min),
			TranslationKey: "validation.min",
			TranslationValues: map[string]any{
				"field": field,
				"min":   min,
			},
		},
	}
}

// MaxNum validates that a numeric value is less than or equal to the maximum.
func MaxNum[T Numeric](field string, value T, max T) Rule {
	return Rule{
		Check: func() bool {
			return value <= max
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be at most %v", max),
			TranslationKey: "validation.max",
			TranslationValues: map[string]any{
				"field": field,
				"max":   max,
			},
		},
	}
}

// Finite validates that a float is neither NaN nor infinite.
func Finite(field string, value float64) Rule {
	return Rule{
		Check: func() bool {
			return !math.IsNaN(value) && !math.IsInf(value, 0)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a finite number",
			TranslationKey: "validation.finite",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}
