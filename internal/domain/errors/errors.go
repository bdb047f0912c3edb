// Package errors defines the application-level error taxonomy: every error
// carries an HTTP status, a machine-readable business code, and a
// user-facing message.
package errors

import (
	"net/http"

	"lifeline/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types.
//
// Precondition violations: the caller's fault, nothing was mutated.
var (
	ErrRequestNotFound = NewBaseError(
		http.StatusNotFound,
		"REQUEST_NOT_FOUND",
		"No such help request",
		"",
	)

	// ErrAlreadyClaimed is surfaced when a claim loses the conditional-update
	// race: the request left pending between the caller's read and write.
	ErrAlreadyClaimed = NewBaseError(
		http.StatusNotFound,
		"ALREADY_CLAIMED",
		"Request has already been claimed by another volunteer",
		"",
	)

	// ErrNotEligible covers complete/escalate precondition failures: the
	// request is not in accepted state or is owned by a different volunteer.
	ErrNotEligible = NewBaseError(
		http.StatusNotFound,
		"NOT_ELIGIBLE",
		"Request is not accepted or is assigned to a different volunteer",
		"",
	)

	ErrVolunteerNotFound = NewBaseError(
		http.StatusNotFound,
		"VOLUNTEER_NOT_FOUND",
		"No such volunteer",
		"",
	)

	ErrDuplicateLocation = NewBaseError(
		http.StatusConflict,
		"DUPLICATE_LOCATION",
		"A request already exists at these exact coordinates",
		"",
	)

	ErrVolunteerAlreadyExists = NewBaseError(
		http.StatusConflict,
		"VOLUNTEER_ALREADY_EXISTS",
		"This contact is already registered",
		"",
	)

	// ErrInvalidCredentials covers both an unknown contact and a wrong
	// password, so login failures never reveal which contacts exist.
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Contact or password is incorrect",
		"",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)
)

// Partial-success states: the authoritative lifecycle mutation has already
// committed; these annotate an otherwise successful transition and must never
// trigger a rollback.
var (
	ErrInvalidContact = NewBaseError(
		http.StatusInternalServerError,
		"INVALID_CONTACT",
		"Requester contact cannot be normalized to a dialable number",
		"",
	)

	ErrNotificationFailed = NewBaseError(
		http.StatusInternalServerError,
		"NOTIFICATION_FAILED",
		"Status change committed but the notification could not be sent",
		"",
	)

	ErrNoRecipientsFound = NewBaseError(
		http.StatusNotFound,
		"NO_RECIPIENTS_FOUND",
		"Request escalated but no volunteers were found within the alert radius",
		"",
	)

	ErrPartialDeliveryFailure = NewBaseError(
		http.StatusOK,
		"PARTIAL_DELIVERY_FAILURE",
		"Alert persisted but one or more recipient notifications failed",
		"",
	)
)

// Infrastructure errors.
var (
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Database transaction failed",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
