package validator

import (
	"net/mail"
	"strings"
)

// ValidEmail validates that a string is a bare email address such as
// user@example.com. Display names ("Jane <jane@example.com>") are rejected.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return isEmail(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid email address",
			TranslationKey: "validation.email",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

func isEmail(value string) bool {
	if strings.TrimSpace(value) != value || value == "" {
		return false
	}

	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value || addr.Name != "" {
		return false
	}

	local, domain, ok := strings.Cut(value, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return false
	}

	// Domain must contain at least one dot and no empty labels
	if !strings.Contains(domain, ".") {
		return false
	}
	for label := range strings.SplitSeq(domain, ".") {
		if label == "" {
			return false
		}
	}

	return true
}
