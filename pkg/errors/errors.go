package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeConflict     ErrorType = "conflict"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeForbidden    ErrorType = "forbidden"
	ErrorTypeInternal     ErrorType = "internal"
	ErrorTypeDatabase     ErrorType = "database"
	ErrorTypeIdentity     ErrorType = "identity"
	ErrorTypeNotification ErrorType = "notification"
)

// Stage identifies where in the provisioning workflow an error arose
type Stage string

const (
	StageValidation Stage = "validation"
	StageIdentity   Stage = "identity"
	StageProfile    Stage = "profile"
	StageNotify     Stage = "notify"
)

// APIError represents a structured API error
type APIError struct {
	Type        ErrorType `json:"type"`
	Code        string    `json:"code"`
	Message     string    `json:"message"`
	Stage       Stage     `json:"stage,omitempty"`
	Details     string    `json:"details,omitempty"`
	HTTPStatus  int       `json:"-"`
	InternalErr error     `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Message, e.Details, e.Code)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// Unwrap returns the underlying error
func (e *APIError) Unwrap() error {
	return e.InternalErr
}

// NewAPIError creates a new API error
func NewAPIError(errorType ErrorType, code, message string, httpStatus int) *APIError {
	return &APIError{
		Type:       errorType,
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// NewAPIErrorWithCause creates a new API error with an underlying cause
func NewAPIErrorWithCause(errorType ErrorType, code, message string, httpStatus int, cause error) *APIError {
	return &APIError{
		Type:        errorType,
		Code:        code,
		Message:     message,
		HTTPStatus:  httpStatus,
		InternalErr: cause,
	}
}

// Predefined error constructors

// ValidationError creates a validation error
func ValidationError(code, message string) *APIError {
	err := NewAPIError(ErrorTypeValidation, code, message, http.StatusBadRequest)
	err.Stage = StageValidation
	return err
}

// NotFoundError creates a not found error
func NotFoundError(resource string) *APIError {
	return NewAPIError(ErrorTypeNotFound, "RESOURCE_NOT_FOUND", fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

// ConflictError creates a conflict error
func ConflictError(message string) *APIError {
	return NewAPIError(ErrorTypeConflict, "RESOURCE_CONFLICT", message, http.StatusConflict)
}

// UnauthorizedError creates an unauthorized error
func UnauthorizedError(message string) *APIError {
	return NewAPIError(ErrorTypeUnauthorized, "UNAUTHORIZED", message, http.StatusUnauthorized)
}

// ForbiddenError creates a forbidden error
func ForbiddenError(message string) *APIError {
	return NewAPIError(ErrorTypeForbidden, "FORBIDDEN", message, http.StatusForbidden)
}

// InternalError creates an internal server error
func InternalError(message string) *APIError {
	return NewAPIError(ErrorTypeInternal, "INTERNAL_ERROR", message, http.StatusInternalServerError)
}

// DatabaseError creates a database error
func DatabaseError(operation string, cause error) *APIError {
	return NewAPIErrorWithCause(ErrorTypeDatabase, "DATABASE_ERROR",
		fmt.Sprintf("Database operation failed: %s", operation),
		http.StatusInternalServerError, cause)
}

// IdentityCreationError creates an error for a failed identity-provider
// create call. A duplicate email and an unreachable provider both
// surface here.
func IdentityCreationError(cause error) *APIError {
	err := NewAPIErrorWithCause(ErrorTypeIdentity, "IDENTITY_CREATION_FAILED",
		"Failed to create identity", http.StatusBadGateway, cause)
	err.Stage = StageIdentity
	return err
}

// IdentityDeletionError creates an error for a failed identity-provider
// delete call. Compensation callers log this rather than propagating it.
func IdentityDeletionError(cause error) *APIError {
	err := NewAPIErrorWithCause(ErrorTypeIdentity, "IDENTITY_DELETION_FAILED",
		"Failed to delete identity", http.StatusBadGateway, cause)
	err.Stage = StageIdentity
	return err
}

// ProfileWriteError creates an error for a failed primary profile write
func ProfileWriteError(cause error) *APIError {
	err := NewAPIErrorWithCause(ErrorTypeDatabase, "PROFILE_WRITE_FAILED",
		"Failed to write profile", http.StatusInternalServerError, cause)
	err.Stage = StageProfile
	return err
}

// NotificationError creates an error for a failed welcome notification.
// Never fatal to the caller's operation.
func NotificationError(cause error) *APIError {
	err := NewAPIErrorWithCause(ErrorTypeNotification, "NOTIFICATION_FAILED",
		"Failed to send notification", http.StatusServiceUnavailable, cause)
	err.Stage = StageNotify
	return err
}

// Error handling utilities

// IsAPIError checks if an error is an APIError
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// GetAPIError extracts APIError from an error
func GetAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

// StageOf returns the workflow stage recorded on the error, if any
func StageOf(err error) Stage {
	if apiErr := GetAPIError(err); apiErr != nil {
		return apiErr.Stage
	}
	return ""
}
