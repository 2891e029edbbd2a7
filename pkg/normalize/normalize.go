// Package normalize turns loosely formatted input strings into the canonical
// forms stored in the catalog: phone numbers, usernames, and ISBNs.
package normalize

import (
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

var (
	// ErrPhoneFormat is returned when input cannot be read as a US phone number.
	ErrPhoneFormat = errors.New("phone number must be in valid USA format (e.g., 123-456-7890)")
	// ErrUsernameFormat is returned when a username contains non-alphanumeric characters.
	ErrUsernameFormat = errors.New("username must contain only alphanumeric characters")
	// ErrISBNFormat is returned when an ISBN does not reduce to 10 or 13 digits.
	ErrISBNFormat = errors.New("ISBN must be 10 or 13 digits")
)

// Phone strips formatting from a US phone number and renders it as
// DDD-DDD-DDDD. The cleaned input must be exactly ten digits with the area
// code and exchange code both starting with 2-9. Phone is idempotent: feeding
// its output back in yields the same value.
func Phone(raw string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)

	if len(digits) != 10 {
		return "", ErrPhoneFormat
	}
	if digits[0] < '2' || digits[3] < '2' {
		return "", ErrPhoneFormat
	}

	return digits[:3] + "-" + digits[3:6] + "-" + digits[6:], nil
}

// Username lowercases a username. Every character must be alphanumeric.
func Username(raw string) (string, error) {
	for _, r := range raw {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return "", ErrUsernameFormat
		}
	}
	return strings.ToLower(raw), nil
}

// ISBN strips hyphens and spaces from an ISBN. The remaining characters must
// be digits and number exactly 10 or 13.
func ISBN(raw string) (string, error) {
	cleaned := strings.NewReplacer("-", "", " ", "").Replace(raw)
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return "", ErrISBNFormat
		}
	}
	if len(cleaned) != 10 && len(cleaned) != 13 {
		return "", ErrISBNFormat
	}
	return cleaned, nil
}

// TitleCase capitalizes the first letter of each whitespace-separated token
// and lowercases the rest. Empty input is returned unchanged; required-field
// checks are the caller's concern.
func TitleCase(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return name
	}
	for i, f := range fields {
		runes := []rune(strings.ToLower(f))
		runes[0] = unicode.ToUpper(runes[0])
		fields[i] = string(runes)
	}
	return strings.Join(fields, " ")
}
