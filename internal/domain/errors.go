package domain

import "errors"

// FieldError ties a recoverable error to the submitting form field so
// handlers can re-render the form with the message in place.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Err.Error() }

func (e *FieldError) Unwrap() error { return e.Err }

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrProfileExists      = errors.New("profile already exists")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrDuplicateName      = errors.New("name already exists")
	ErrLookupNotFound     = errors.New("lookup row not found")
	ErrWishNotFound       = errors.New("wish not found")
	ErrSessionNotFound    = errors.New("session not found")
)
