// Package validation checks request DTOs against their validate tags.
package validation

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct validates a DTO and returns the first rule violation, if any.
func Struct(v interface{}) error {
	return validate.Struct(v)
}
