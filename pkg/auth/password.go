package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes signup passwords with bcrypt.
type PasswordHasher struct {
	Cost int
}

// NewPasswordHasher clamps cost into the accepted 10-14 range.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < 10 || cost > 14 {
		cost = 12
	}
	return &PasswordHasher{Cost: cost}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (h *PasswordHasher) Verify(password, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
}
