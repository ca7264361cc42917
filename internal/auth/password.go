package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrWeakPassword  = errors.New("password must be at least 4 characters")
	ErrWrongPassword = errors.New("incorrect room password")
)

// PasswordHasher hashes and verifies room passwords with bcrypt.
// It is stateless and safe for concurrent use; a single instance is shared
// by every component that needs it.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher at bcrypt's default cost.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: bcrypt.DefaultCost}
}

// Validate checks that the password meets the minimum requirements.
func (h *PasswordHasher) Validate(password string) error {
	if len(password) < 4 {
		return ErrWeakPassword
	}
	return nil
}

// Hash returns the bcrypt hash of the password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify compares a password against a stored hash.
// Returns ErrWrongPassword on mismatch.
func (h *PasswordHasher) Verify(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrWrongPassword
	}
	return nil
}
