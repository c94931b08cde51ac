package auth

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// PasswordMinLength is the minimum number of characters of a password.
const PasswordMinLength = 8

// HashPassword hashes the password with bcrypt. A cost of 0 selects the
// bcrypt default.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("could not hash password: %w", err)
	}

	return string(hash), nil
}

// CheckPassword compares the password with a hash created by HashPassword.
func CheckPassword(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) || errors.Is(err, bcrypt.ErrHashTooShort) {
		return ErrInvalidCredentials
	}

	return err
}

// PasswordRequirements returns the requirements the password does not meet.
// The result is empty for a strong enough password.
func PasswordRequirements(password string) []string {
	requirements := []string{}

	if utf8.RuneCountInString(password) < PasswordMinLength {
		requirements = append(requirements, fmt.Sprintf("Password must be at least %d characters", PasswordMinLength))
	}

	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}

	if !upper {
		requirements = append(requirements, "Password must contain at least one uppercase letter")
	}

	if !lower {
		requirements = append(requirements, "Password must contain at least one lowercase letter")
	}

	if !digit {
		requirements = append(requirements, "Password must contain at least one number")
	}

	return requirements
}
