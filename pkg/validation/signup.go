package validation

import (
	"mock-interview-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

// ValidateSignup runs the signup form rules and returns nil when every field is valid.
func ValidateSignup(v *validator.Validate, req *domain.SignupRequest) FieldErrors {
	if err := v.Struct(req); err != nil {
		return FormatValidationErrors(err)
	}
	return nil
}
