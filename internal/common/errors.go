// Package common defines shared constants and sentinel errors used across
// the server, its HTTP boundary and the admin tooling. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Access token errors. Verification collapses every failure into
	// ErrInvalidToken; expired tokens also wrap ErrTokenExpired for logs.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Refresh token lifecycle errors.
	ErrUnknownRefreshToken = errors.New("unknown refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
