package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrInvalidFormat      = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")
	ErrPremiumRequired  = errors.New("premium plan required")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Student errors
var (
	ErrStudentNotFound       = errors.New("student not found")
	ErrGuardianEmailRequired = errors.New("guardian email required for premium plan")
	ErrGuardianLinkNotFound  = errors.New("guardian link not found")
	ErrProvisioning          = errors.New("guardian access provisioning failed")
)

// Teacher errors
var (
	ErrTeacherNotFound = errors.New("teacher not found")
)

// Finance errors
var (
	ErrTuitionNotFound     = errors.New("tuition payment not found")
	ErrExpenseNotFound     = errors.New("expense not found")
	ErrLedgerEntryNotFound = errors.New("ledger entry not found")
	ErrInvalidPeriod       = errors.New("invalid month or year")
)

// Feedback errors
var (
	ErrFeedbackNotFound = errors.New("feedback not found")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewProvisioningError wraps a database failure that aborted the provisioning
// transaction. The underlying error is kept for logging only.
func NewProvisioningError(err error) error {
	return &CustomError{
		Err:     ErrProvisioning,
		Message: "guardian access provisioning failed",
		Cause:   err,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Cause   error
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}
