package app

import "fmt"

// AppErrorType represents the type of application error.
type AppErrorType int

const (
	// ConfigLoadFailed indicates the configuration could not be loaded or validated.
	ConfigLoadFailed AppErrorType = iota
	// LocationFailed indicates a model, template or output location is unusable.
	LocationFailed
	// PolicyInvalid indicates an unknown error policy name.
	PolicyInvalid
	// SetupFailed indicates the generator could not be constructed.
	SetupFailed
	// GenerationFailed indicates a fatal failure stopped the run.
	GenerationFailed
)

// AppError represents an application-layer error.
type AppError struct {
	// Type is the error type.
	Type AppErrorType
	// Message is the error message.
	Message string
	// Cause is the underlying error.
	Cause error
}

// Error returns the error message.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new AppError.
func NewAppError(errType AppErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}
