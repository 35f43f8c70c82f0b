package generator

import "fmt"

// GeneratorErrorType categorizes generator errors.
type GeneratorErrorType int

const (
	// GeneratorWriteFailed indicates a file write operation failed.
	GeneratorWriteFailed GeneratorErrorType = iota
	// GeneratorRenderFailed indicates template rendering failed.
	GeneratorRenderFailed
	// GeneratorPathError indicates an invalid or unsafe output path was computed.
	GeneratorPathError
)

// GeneratorError represents generator-specific errors.
type GeneratorError struct {
	// Type categorizes the error.
	Type GeneratorErrorType
	// Message is the error message.
	Message string
	// File is the file path related to the error (if applicable).
	File string
	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *GeneratorError) Error() string {
	if e.File != "" {
		if e.Cause != nil {
			return fmt.Sprintf("%s (file: %s): %v", e.Message, e.File, e.Cause)
		}
		return fmt.Sprintf("%s (file: %s)", e.Message, e.File)
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}

	return e.Message
}

// Unwrap returns the underlying cause error for error unwrapping.
func (e *GeneratorError) Unwrap() error {
	return e.Cause
}

// newGeneratorError creates a new GeneratorError.
func newGeneratorError(typ GeneratorErrorType, message, file string, cause error) *GeneratorError {
	return &GeneratorError{
		Type:    typ,
		Message: message,
		File:    file,
		Cause:   cause,
	}
}

// MissingAttributeError is returned when an output file name pattern
// references an attribute the matched object does not have.
type MissingAttributeError struct {
	// Pattern is the output file name pattern.
	Pattern string
	// Attribute is the missing attribute name.
	Attribute string
}

// Error implements the error interface.
func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("output file name %q needs attribute %q, which the matched object does not have", e.Pattern, e.Attribute)
}

// FatalError stops a run. It carries the failure that the active policy
// refused to skip.
type FatalError struct {
	// Kind is the failure kind.
	Kind FailureKind
	// Binding is the index of the binding being processed.
	Binding int
	// ModelFile is the model file of that binding.
	ModelFile string
	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e *FatalError) Error() string {
	return fmt.Sprintf("binding %d (model %s): %s: %v", e.Binding, e.ModelFile, e.Kind, e.Err)
}

// Unwrap returns the underlying failure.
func (e *FatalError) Unwrap() error {
	return e.Err
}
