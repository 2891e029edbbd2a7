package binder

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/libooktrac/libooktrac/pkg/normalize"
)

var (
	dateRE = regexp.MustCompile(`^\d{4}-(0[0-9]|1[0-2])-(0[0-9]|1[0-9]|2[0-9]|3[0-1])$`)
)

// dateValidator ensures the value matches the format YYYY-MM-DD or the empty
// string. The reason the empty string is allowed is that this validator can be
// used to clear out values. However, this is only useful in that case, so if
// you're using this validator but want the value to be required, add a `ne=` to
// the validate tag so that the empty string is disallowed.
func dateValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return dateRE.MatchString(value)
}

// phoneValidator ensures the value is a phone number that the catalog can
// canonicalize. The empty string is allowed so the validator composes with
// optional fields; pair it with `required` when the field is mandatory.
func phoneValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := normalize.Phone(value)
	return err == nil
}

// isbnValidator ensures the value strips down to a 10 or 13 digit ISBN. The
// empty string is allowed for the same reason as phoneValidator.
func isbnValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := normalize.ISBN(value)
	return err == nil
}
