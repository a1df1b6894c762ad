package auth

import "strings"

// Sanitize normalizes an access code for use as an email local part:
// trim, collapse internal whitespace runs to single underscores, lowercase.
func Sanitize(code string) string {
	return strings.ToLower(strings.Join(strings.Fields(code), "_"))
}

// DeriveEmail maps an access code to its login identity. The mapping is
// stable under leading/trailing whitespace variation of the code.
func DeriveEmail(code, domain string) string {
	return Sanitize(code) + "@" + domain
}
