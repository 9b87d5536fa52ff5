package validator

import "fmt"

// Equal validates that value equals expected, e.g. a consent checkbox that
// must be literally true.
func Equal[T comparable](field string, value, expected T) Rule {
	return Rule{
		Check: func() bool {
			return value == expected
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be %v", expected),
			TranslationKey: "validation.equal",
			TranslationValues: map[string]any{
				"field":    field,
				"expected": expected,
			},
		},
	}
}
