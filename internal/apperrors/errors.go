package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the resource is in a state that does not allow the operation.
var ErrConflict = errors.New("state conflict")

// ErrDependency indicates a collaborator (catalog, identity) could not be reached.
var ErrDependency = errors.New("dependency unavailable")

// ErrConcurrency indicates a lost update was detected by the storage layer.
var ErrConcurrency = errors.New("concurrent modification")

// ErrUnauthorized indicates the caller identity is missing or invalid.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is known but not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected failure.
var ErrInternal = errors.New("internal error")

// Verification specific errors. Each wraps one of the categories above so callers can
// match either the precise condition or its category.
var (
	ErrSessionNotFound     = fmt.Errorf("%w: verification session not found", ErrNotFound)
	ErrItemNotInSession    = fmt.Errorf("%w: item is not part of this verification session", ErrNotFound)
	ErrLogNotFound         = fmt.Errorf("%w: verification log not found", ErrNotFound)
	ErrSessionNotActive    = fmt.Errorf("%w: verification session is not active", ErrConflict)
	ErrSessionLocked       = fmt.Errorf("%w: logs can only be deleted while the session is active or paused", ErrConflict)
	ErrProtectedLog        = fmt.Errorf("%w: session start and completion logs cannot be deleted", ErrConflict)
	ErrAlreadyCompleted    = fmt.Errorf("%w: verification session is already completed", ErrConflict)
	ErrInvalidTransition   = fmt.Errorf("%w: session status transition not allowed", ErrConflict)
	ErrCatalogUnavailable  = fmt.Errorf("%w: inventory catalog unavailable", ErrDependency)
	ErrConcurrentUpdate    = fmt.Errorf("%w: item was modified concurrently", ErrConcurrency)
	ErrNotSessionInitiator = fmt.Errorf("%w: only the session initiator can perform this action", ErrForbidden)
)

// AppError carries a status-like code alongside the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}
