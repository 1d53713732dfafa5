package auth

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email has been taken")
	ErrInvalidCredentials = errors.New("credentials do not match")
)
