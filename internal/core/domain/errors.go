package domain

import "errors"

// Auth gate failures.
var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenRevoked = errors.New("token revoked")
	ErrForbidden    = errors.New("forbidden")
)

// Account failures.
var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidUser        = errors.New("invalid user")
)

// ErrBookNotFound is returned when no book matches the requested id.
var ErrBookNotFound = errors.New("book not found")
