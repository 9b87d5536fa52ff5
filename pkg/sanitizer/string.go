package sanitizer

import (
	"strings"
	"unicode"
)

// RemoveControlChars drops control characters except tab, CR and LF.
func RemoveControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// SingleLine collapses every run of whitespace, line breaks included, into
// one space and trims the ends.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// MaxLength truncates s to at most n runes.
func MaxLength(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
