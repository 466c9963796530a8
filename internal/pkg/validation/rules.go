package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Password min length
	PasswordMinLength = 6

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
}

// ValidEmail reports whether the given address matches the email pattern.
// The address is lowercased before matching.
func ValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(strings.ToLower(email))
}

// ValidName reports whether a display name has acceptable length
func ValidName(name string) bool {
	return len(name) >= NameMinLength && len(name) <= NameMaxLength
}
