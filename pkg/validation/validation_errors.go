package validation

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// MissingFields returns the fields that failed a "required" rule, in declaration order.
// It returns nil for errors that are not validation errors.
func MissingFields(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	var fields []string
	for _, e := range validationErrors {
		if e.Tag() == "required" {
			fields = append(fields, e.Field())
		}
	}
	return fields
}

// IsValidationError reports whether err came from struct validation rather than
// from a misuse of the validator itself.
func IsValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}
