package apperrors

import "errors"

// Sentinel errors, one per response class.
var (
	// Validation errors (400)
	ErrValidation = errors.New("validation failed")

	// Uniqueness violations (400)
	ErrDuplicate = errors.New("resource already exists")

	// Missing entities (404)
	ErrNotFound = errors.New("resource not found")

	// Authorization failures (403)
	ErrForbidden = errors.New("permission denied")

	// Account not activated (400)
	ErrUnverified = errors.New("account not verified")

	// Authentication failures (401)
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Unexpected/store failures (500)
	ErrInternal = errors.New("internal error")
)

// CustomError carries a user-facing message and a separate developer-facing
// detail. The two must never be conflated in responses.
type CustomError struct {
	Err        error
	Message    string
	DevMessage string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDev attaches a developer-facing detail string
func (e *CustomError) WithDev(dev string) *CustomError {
	e.DevMessage = dev
	return e
}

// DevDetail extracts the developer-facing detail from an error chain, if any.
func DevDetail(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.DevMessage
	}
	return ""
}

// NewValidationError creates a validation error with a message
func NewValidationError(message string) *CustomError {
	return &CustomError{Err: ErrValidation, Message: message}
}

// NewDuplicateError creates a uniqueness-violation error with a message
func NewDuplicateError(message string) *CustomError {
	return &CustomError{Err: ErrDuplicate, Message: message}
}

// NewNotFoundError creates a missing-entity error with a message
func NewNotFoundError(message string) *CustomError {
	return &CustomError{Err: ErrNotFound, Message: message}
}

// NewForbiddenError creates an authorization error with a message
func NewForbiddenError(message string) *CustomError {
	return &CustomError{Err: ErrForbidden, Message: message}
}

// NewUnverifiedError creates an unverified-account error with a message
func NewUnverifiedError(message string) *CustomError {
	return &CustomError{Err: ErrUnverified, Message: message}
}

// NewInternalError creates an unexpected-failure error. The user-facing
// message stays generic; cause feeds the developer detail.
func NewInternalError(message string, cause error) *CustomError {
	ce := &CustomError{Err: ErrInternal, Message: message}
	if cause != nil {
		ce.DevMessage = cause.Error()
	}
	return ce
}
