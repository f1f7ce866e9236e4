package shared

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Layouts accepted for calendar values
const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
	TimeLayout  = "15:04"
)

// MinPasswordLength is the minimum accepted password length
const MinPasswordLength = 8

// ValidateEmail reports whether email looks like an address
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidatePassword returns every strength rule the password violates.
// An empty slice means the password is acceptable.
func ValidatePassword(password string) []string {
	var problems []string
	if len(password) < MinPasswordLength {
		problems = append(problems, fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper {
		problems = append(problems, "Password must contain at least one uppercase letter")
	}
	if !hasLower {
		problems = append(problems, "Password must contain at least one lowercase letter")
	}
	if !hasDigit {
		problems = append(problems, "Password must contain at least one number")
	}
	return problems
}

// ValidateRequired returns "<field> is required" for each blank field.
// Fields are checked in the order given.
func ValidateRequired(fields ...Field) []string {
	var problems []string
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			problems = append(problems, f.Name+" is required")
		}
	}
	return problems
}

// Field is a named string value for ValidateRequired
type Field struct {
	Name  string
	Value string
}

// ValidateDate checks a YYYY-MM-DD calendar date
func ValidateDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ValidateMonth checks a YYYY-MM month
func ValidateMonth(s string) bool {
	_, err := time.Parse(MonthLayout, s)
	return err == nil
}

// ValidateClock checks an HH:MM wall clock time
func ValidateClock(s string) bool {
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}

// SanitizeString trims surrounding whitespace and strips angle brackets
func SanitizeString(s string) string {
	s = strings.TrimSpace(s)
	return strings.NewReplacer("<", "", ">", "").Replace(s)
}

// NormalizeEmail lower-cases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
