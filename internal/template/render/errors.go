package render

import "fmt"

// ErrorType categorizes rendering errors.
type ErrorType int

const (
	// TemplateNotFound indicates the template file could not be read.
	TemplateNotFound ErrorType = iota
	// TemplateInvalid indicates the template failed to parse.
	TemplateInvalid
	// TemplateExecFailed indicates template execution failed.
	TemplateExecFailed
)

// Error is returned by TextRenderer.
type Error struct {
	Type     ErrorType
	Template string
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (template: %s): %v", e.Message, e.Template, e.Cause)
	}
	return fmt.Sprintf("%s (template: %s)", e.Message, e.Template)
}

// Unwrap returns the underlying cause error.
func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(typ ErrorType, tmpl, message string, cause error) *Error {
	return &Error{Type: typ, Template: tmpl, Message: message, Cause: cause}
}
