package domain

import "errors"

// Sentinel errors. Services return these (possibly wrapped); controllers map
// them to HTTP status codes and never leak raw store errors to clients.
var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUserNotFound      = errors.New("user not found")
	ErrWrongPassword     = errors.New("wrong password")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrNoUpdateFields    = errors.New("no data to update")
	ErrTokenSign         = errors.New("failed to sign token")
)
