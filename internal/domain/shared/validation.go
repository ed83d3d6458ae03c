package shared

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	phonePattern = regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// ValidatePhone accepts digits, spaces, hyphens, parentheses and a plus sign.
// Blank input is accepted.
func ValidatePhone(field, phone string) error {
	if phone == "" {
		return nil
	}
	if len(phone) > 50 || !phonePattern.MatchString(phone) {
		return NewFieldError(field, "Geçersiz telefon numarası")
	}
	return nil
}

// ValidateEmail performs a basic format check. Blank input is accepted.
func ValidateEmail(field, email string) error {
	if email == "" {
		return nil
	}
	if len(email) > 200 || !emailPattern.MatchString(email) {
		return NewFieldError(field, "Geçersiz e-posta adresi")
	}
	return nil
}

// ValidateMaxLen limits a field to max runes.
func ValidateMaxLen(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return NewFieldError(field, field+" alanı çok uzun")
	}
	return nil
}

// Required trims value and fails when nothing is left.
func Required(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", RequiredField(field)
	}
	return value, nil
}
