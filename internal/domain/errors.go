package domain

import "errors"

// Errors surfaced to callers of the auth and task services.
var (
	// ErrUsernameTaken is returned when registering with a username that already exists
	ErrUsernameTaken = errors.New("username is already taken")

	// ErrEmailTaken is returned when registering with an email that belongs to another account
	ErrEmailTaken = errors.New("email is already registered to a different account")

	// ErrInvalidCredentials covers both an unknown username and a wrong password
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidRefreshToken is returned for unknown, mismatched or expired refresh tokens
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrExpiredToken is returned when an access token is past its expiration
	ErrExpiredToken = errors.New("token has expired")

	// ErrInvalidToken is returned for any other access token verification failure
	ErrInvalidToken = errors.New("invalid token")

	// ErrConfiguration marks missing or invalid required settings. It is fatal.
	ErrConfiguration = errors.New("configuration error")

	// ErrValidation wraps malformed input rejected before any lookup
	ErrValidation = errors.New("validation failed")

	// ErrTaskNotFound is returned when no task matches both id and owner
	ErrTaskNotFound = errors.New("task not found")
)
