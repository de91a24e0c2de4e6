package transfer

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Validate checks the `validate` struct tags of a request body.
func Validate(v any) error {
	return validate.Struct(v)
}
