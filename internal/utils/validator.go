package utils

import (
	"github.com/go-playground/validator/v10"
)

// RequestValidator adapts go-playground/validator to Echo's
// Validator interface so handlers can call c.Validate(&req) on bound
// DTOs and get tag-based validation.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator returns a validator ready to be assigned to
// echo.Echo.Validator.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate checks struct tags on i and returns the raw
// validator.ValidationErrors so handlers can build field-level
// responses.
func (rv *RequestValidator) Validate(i interface{}) error {
	return rv.validate.Struct(i)
}

// FieldErrors flattens a validation error into a field -> constraint
// map suitable for a 400 response body. A non-validator error maps
// to a single "_" entry.
func FieldErrors(err error) map[string]string {
	out := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			out[fe.Field()] = fe.Tag()
		}
		return out
	}
	out["_"] = "invalid"
	return out
}
