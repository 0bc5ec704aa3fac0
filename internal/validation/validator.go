package validation

import (
	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a configured validator. All rules live in struct tags; no
// custom validators are registered.
func New() *validatorv10.Validate {
	return validatorv10.New()
}
