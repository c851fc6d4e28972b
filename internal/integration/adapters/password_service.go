// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/cardwise/backend/internal/application/adapter"
)

const (
	// bcryptCost is the cost factor applied to new hashes.
	bcryptCost = 12
	// minPasswordLength is the minimum accepted password length.
	minPasswordLength = 8
)

// passwordService hashes and verifies passwords with bcrypt. The cost
// factor is baked into each hash, so raising bcryptCost later only
// affects new passwords.
type passwordService struct{}

// NewPasswordService creates a new password service instance.
func NewPasswordService() adapter.PasswordService {
	return &passwordService{}
}

func (s *passwordService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *passwordService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePasswordStrength rejects passwords shorter than
// minPasswordLength. Length is the only server-side rule.
func (s *passwordService) ValidatePasswordStrength(password string) error {
	if len(password) < minPasswordLength {
		return errors.New("password must be at least 8 characters long")
	}
	return nil
}
