package validation

import "unicode"

type Strength string

const (
	StrengthWeak   Strength = "weak"
	StrengthMedium Strength = "medium"
	StrengthStrong Strength = "strong"
)

// PasswordStrength classifies a password for the signup indicator only; it
// never gates submission.
func PasswordStrength(password string) Strength {
	length := len([]rune(password))
	if length < 6 {
		return StrengthWeak
	}
	if length >= 10 && hasUpper(password) && hasDigit(password) && hasSymbol(password) {
		return StrengthStrong
	}
	return StrengthMedium
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func hasSymbol(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) {
			return true
		}
	}
	return false
}
