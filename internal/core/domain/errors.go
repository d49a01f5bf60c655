package domain

import "errors"

// Error taxonomy shared by the mutation gateway and the HTTP layer.
//
// ErrUnauthenticated is rerouted into the login workflow rather than surfaced
// as a raw error. ErrInvariantViolation indicates a bug in the write path's
// atomic-update logic; it is logged loudly and never silently swallowed.
var (
	ErrUnauthenticated     = errors.New("authentication required")
	ErrForbidden           = errors.New("access forbidden")
	ErrAccountRestricted   = errors.New("account restricted")
	ErrContentRejected     = errors.New("content rejected")
	ErrValidationFailed    = errors.New("validation failed")
	ErrNotFound            = errors.New("record not found")
	ErrBackendUnavailable  = errors.New("backend unavailable")
	ErrInvariantViolation  = errors.New("invariant violation")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserExists          = errors.New("user already exists")
)
