package domain

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrDuplicateEmail       = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidInput         = errors.New("invalid input")
	ErrMalformedResponse    = errors.New("malformed generator response")
	ErrGeneratorUnavailable = errors.New("generator unavailable")
	ErrRateLimited          = errors.New("rate limited")
)
