package sanitizer

import "strings"

// MaskEmail keeps the first character of the local part and the domain,
// e.g. "jane@example.com" becomes "j***@example.com". Input that is not an
// address is returned trimmed.
func MaskEmail(email string) string {
	email = strings.TrimSpace(email)
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return email
	}
	runes := []rune(local)
	return string(runes[0]) + strings.Repeat("*", len(runes)-1) + "@" + domain
}
