package models

import (
	"regexp"
	"strings"

	"gorm.io/gorm"
)

// User is an account that owns categories, transactions and budgets.
type User struct {
	DefaultModel
	Email        string `gorm:"uniqueIndex"`
	Name         string
	PasswordHash string
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// BeforeSave normalizes the email address and trims whitespace.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Name = strings.TrimSpace(u.Name)

	if !ValidEmail(u.Email) {
		return ErrInvalidEmail
	}

	return nil
}
