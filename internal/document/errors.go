package document

import "fmt"

// LoadErrorType categorizes model loading errors.
type LoadErrorType int

const (
	// LoadNotFound indicates the model file does not exist.
	LoadNotFound LoadErrorType = iota
	// LoadReadFailed indicates the model file could not be read.
	LoadReadFailed
	// LoadInvalid indicates the model file is not a valid document.
	LoadInvalid
)

// LoadError is returned when a model document cannot be loaded.
type LoadError struct {
	// Type categorizes the error.
	Type LoadErrorType
	// Source is the model file name.
	Source string
	// Message is the error message.
	Message string
	// Line is the source line the error refers to (0 if unknown).
	Line int
	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	loc := e.Source
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", e.Source, e.Line)
	}
	if e.Cause != nil {
		return fmt.Sprintf("model %s: %s: %v", loc, e.Message, e.Cause)
	}
	return fmt.Sprintf("model %s: %s", loc, e.Message)
}

// Unwrap returns the underlying cause error.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

func newLoadError(typ LoadErrorType, source, message string, line int, cause error) *LoadError {
	return &LoadError{
		Type:    typ,
		Source:  source,
		Message: message,
		Line:    line,
		Cause:   cause,
	}
}
