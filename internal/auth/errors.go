package auth

import "errors"

var (
	ErrMissingToken       = errors.New("you need to be logged in to access this resource")
	ErrInvalidToken       = errors.New("your session is invalid or has expired, please log in again")
	ErrInvalidCredentials = errors.New("the email address or password is incorrect")
	ErrPasswordMismatch   = errors.New("the password and its confirmation do not match")
	ErrWeakPassword       = errors.New("the password does not meet the requirements")
)
