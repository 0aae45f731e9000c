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
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountBanned      = errors.New("account is banned")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Marketplace errors
var (
	ErrJobNotFound         = errors.New("job listing not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyApplied      = errors.New("already applied to this job listing")
	ErrInvalidStatus       = errors.New("invalid status value")
)

// Admin errors
var (
	ErrApprovalNotFound        = errors.New("organization approval not found")
	ErrApprovalAlreadyReviewed = errors.New("organization approval already reviewed")
	ErrReportNotFound          = errors.New("report not found")
	ErrNotAnAdmin              = errors.New("user is not an administrator")
)

// Kind identifies the layer an error was wrapped by. Each layer surfaces
// exactly one kind: AuthError for identity/session operations, DatabaseError
// for domain CRUD, AdminError for administrative operations.
type Kind string

const (
	KindAuth     Kind = "AuthError"
	KindDatabase Kind = "DatabaseError"
	KindAdmin    Kind = "AdminError"
)

// LayerError represents a layer-specific error wrapping the underlying cause
type LayerError struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface
func (e *LayerError) Error() string {
	if e.Message != "" {
		return string(e.Kind) + ": " + e.Message
	}
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Err.Error()
	}
	return string(e.Kind)
}

// Unwrap implements errors.Unwrap
func (e *LayerError) Unwrap() error {
	return e.Err
}

// NewAuthError wraps err as an identity/session layer failure
func NewAuthError(message string, err error) *LayerError {
	return &LayerError{Kind: KindAuth, Message: message, Err: err}
}

// NewDatabaseError wraps err as a domain CRUD layer failure
func NewDatabaseError(message string, err error) *LayerError {
	return &LayerError{Kind: KindDatabase, Message: message, Err: err}
}

// NewAdminError wraps err as an administrative layer failure
func NewAdminError(message string, err error) *LayerError {
	return &LayerError{Kind: KindAdmin, Message: message, Err: err}
}

// IsKind reports whether err carries the given layer kind
func IsKind(err error, kind Kind) bool {
	var le *LayerError
	if errors.As(err, &le) {
		return le.Kind == kind
	}
	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
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

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}
