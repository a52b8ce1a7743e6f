package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a JSON field name to a single human-readable message.
// A field without an entry is valid.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return strings.Join(parts, "; ")
}

// FieldLabels maps JSON field names to user-facing labels
var FieldLabels = map[string]string{
	"firstName":       "First name",
	"lastName":        "Last name",
	"email":           "Email",
	"password":        "Password",
	"confirmPassword": "Password confirmation",
	"acceptTerms":     "Terms",
	"jobDescription":  "Job description",
}

// FormatValidationErrors converts validator.ValidationErrors to one message per field
func FormatValidationErrors(err error) FieldErrors {
	out := FieldErrors{}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// Not a validation error, surface it under a generic key
		out["_"] = err.Error()
		return out
	}

	for _, e := range validationErrors {
		if _, seen := out[e.Field()]; seen {
			continue
		}
		out[e.Field()] = formatSingleError(e)
	}

	return out
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	field := e.Field()
	label := getFieldLabel(field)
	param := e.Param()

	switch e.Tag() {
	case "required", "required_trimmed":
		switch field {
		case "confirmPassword":
			return "Please confirm your password"
		case "acceptTerms":
			return "You must accept the terms and conditions"
		}
		return fmt.Sprintf("%s is required", label)

	case "min", "min_trimmed":
		return fmt.Sprintf("%s must be at least %s characters", label, param)

	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, param)

	case "email", "simple_email":
		return "Please enter a valid email address"

	case "eqfield":
		if field == "confirmPassword" {
			return "Passwords do not match"
		}
		return fmt.Sprintf("%s must match %s", label, getFieldLabel(param))

	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts camelCase to spaced words with a leading capital
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i == 0 {
			result.WriteString(strings.ToUpper(string(r)))
			continue
		}
		if r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
			r = r + ('a' - 'A')
		}
		result.WriteRune(r)
	}
	return result.String()
}
