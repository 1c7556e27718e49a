package users

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// UserError represents errors related to user operations
type UserError struct {
	Type       string
	UserID     string
	Message    string
	Violations []string
	Cause      error
}

func (e *UserError) Error() string {
	msg := fmt.Sprintf("user error [%s]: %s", e.Type, e.Message)
	if e.UserID != "" {
		msg = fmt.Sprintf("user error [%s] for user %s: %s", e.Type, e.UserID, e.Message)
	}
	if len(e.Violations) > 0 {
		msg = fmt.Sprintf("%s (%s)", msg, strings.Join(e.Violations, "; "))
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (caused by: %v)", msg, e.Cause)
	}
	return msg
}

func (e *UserError) Unwrap() error {
	return e.Cause
}

// User error types
const (
	UserErrorTypeInvalidArgument  = "invalid_argument"
	UserErrorTypeNotFound         = "not_found"
	UserErrorTypeValidationFailed = "validation_failed"
	UserErrorTypeStorageFailed    = "storage_failed"
)

// NewUserNotFoundError creates an error for when a user is not found
func NewUserNotFoundError(id uuid.UUID) *UserError {
	return &UserError{
		Type:    UserErrorTypeNotFound,
		UserID:  id.String(),
		Message: "user not found",
	}
}

// NewInvalidArgumentError creates an error for malformed request input
func NewInvalidArgumentError(message string) *UserError {
	return &UserError{
		Type:    UserErrorTypeInvalidArgument,
		Message: message,
	}
}

// NewUserValidationError creates an error carrying the accumulated set of
// field-level violations
func NewUserValidationError(violations []string) *UserError {
	return &UserError{
		Type:       UserErrorTypeValidationFailed,
		Message:    "user validation failed",
		Violations: violations,
	}
}

// NewUserStorageError creates an error for storage failures during a user operation
func NewUserStorageError(operation string, cause error) *UserError {
	return &UserError{
		Type:    UserErrorTypeStorageFailed,
		Message: fmt.Sprintf("storage operation %s failed", operation),
		Cause:   cause,
	}
}

// IsNotFound reports whether err is a user-not-found error
func IsNotFound(err error) bool {
	var userErr *UserError
	return errors.As(err, &userErr) && userErr.Type == UserErrorTypeNotFound
}
