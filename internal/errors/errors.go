package errors

import (
	"errors"
)

var (
	// ErrInvalidCredentials covers both an unknown/inactive user and a wrong
	// password; callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountLocked means the lockout window is still active.
	ErrAccountLocked = errors.New("account temporarily locked")
	// ErrSecondFactorRequired means the password verified but the second
	// factor is missing or did not validate.
	ErrSecondFactorRequired = errors.New("second factor required")
	// ErrUnauthorized is the single collapsed failure for refresh/logout
	// validation; it never says which check failed.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrStoreUnavailable marks a durable-store I/O failure. It is never
	// downgraded to a "no record" result.
	ErrStoreUnavailable = errors.New("store unavailable")

	ErrTooManyLoginAttempts = errors.New("too many login attempts")

	ErrDocumentNotFound = errors.New("document not found")
	ErrNotPDF           = errors.New("file is not a PDF")
	ErrStorageDisabled  = errors.New("object storage not configured")
)
