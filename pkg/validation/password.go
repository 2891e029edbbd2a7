package validation

import "strings"

// specialCharacters is the set a password must draw at least one character from.
const specialCharacters = `!@#$%^&*()-_=+[]{};:'",.<>/?\|~` + "`"

const passwordMinLength = 8

// Password checks password strength. All failing checks are reported, in the
// fixed order length, uppercase, lowercase, special character.
func Password(password string) List {
	var list List

	if len(password) < passwordMinLength {
		list.add(CodeValidation, "password", "Password must be at least 8 characters long")
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= 'A' && r <= 'Z' }) {
		list.add(CodeValidation, "password", "Password must contain at least one uppercase letter")
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= 'a' && r <= 'z' }) {
		list.add(CodeValidation, "password", "Password must contain at least one lowercase letter")
	}
	if !strings.ContainsAny(password, specialCharacters) {
		list.add(CodeValidation, "password", "Password must contain at least one special character")
	}

	return list
}
