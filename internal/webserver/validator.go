package webserver

import (
	"github.com/go-playground/validator/v10"
)

// PayloadValidator adapts go-playground/validator to echo's Validator
// interface. Handlers translate validator.ValidationErrors into
// field-level response messages.
type PayloadValidator struct {
	validate *validator.Validate
}

func NewPayloadValidator() *PayloadValidator {
	return &PayloadValidator{validate: validator.New()}
}

func (v *PayloadValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
