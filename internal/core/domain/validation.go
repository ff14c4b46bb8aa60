package domain

import "regexp"

// Patterns shared by signup, agent creation and the CSV row filter.
var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// ValidEmail reports whether s has a local@domain.tld shape.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidMobile reports whether s is exactly ten digits.
func ValidMobile(s string) bool {
	return mobilePattern.MatchString(s)
}

// ValidationError carries a human-readable rejection of a malformed input
// field. Handlers render it as a 400 with the message verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Invalid builds a ValidationError.
func Invalid(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}
