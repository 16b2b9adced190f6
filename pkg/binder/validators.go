package binder

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	dateRE     = regexp.MustCompile(`^\d{4}-(0[0-9]|1[0-2])-(0[0-9]|1[0-9]|2[0-9]|3[0-1])$`)
	nonDigitRE = regexp.MustCompile(`[^0-9Xx]`)
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

// isbnValidator accepts ISBN-10 or ISBN-13 values: after stripping everything
// but digits (and a trailing X check digit), exactly 10 or 13 characters must
// remain. Checksum digits are not verified; the catalog imports real-world
// data that does not always pass them.
func isbnValidator(fl validator.FieldLevel) bool {
	digits := nonDigitRE.ReplaceAllString(fl.Field().String(), "")
	digits = strings.ToUpper(digits)
	return len(digits) == 10 || len(digits) == 13
}
