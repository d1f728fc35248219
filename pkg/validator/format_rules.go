package validator

import "regexp"

// emailRegex is the address syntax the office relay accepts: a local part of
// [A-Za-z0-9._%+-], dot separated domain labels and a 2-7 letter top-level label.
var emailRegex = regexp.MustCompile(`^\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,7}$`)

// IsEmail reports whether value is a full match for the address syntax.
func IsEmail(value string) bool {
	return emailRegex.MatchString(value)
}

// ValidEmail validates that the whole value is an email address.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return IsEmail(value)
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid email address",
			Key:     "validation.email",
		},
	}
}
