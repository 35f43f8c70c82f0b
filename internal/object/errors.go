package object

import (
	"fmt"

	"github.com/tacogips/crossgen/internal/document"
)

// AdaptationError is returned when a matched node cannot be turned into
// a named-attribute object.
type AdaptationError struct {
	// Kind is the kind of the offending node.
	Kind document.Kind
	// Element is the sequence position of the offending element, or -1
	// when the matched node itself is at fault.
	Element int
	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *AdaptationError) Error() string {
	if e.Element >= 0 {
		return fmt.Sprintf("cannot adapt %s at element %d: %s", e.Kind, e.Element, e.Message)
	}
	return fmt.Sprintf("cannot adapt %s: %s", e.Kind, e.Message)
}

func newAdaptationError(kind document.Kind, element int, message string) *AdaptationError {
	return &AdaptationError{Kind: kind, Element: element, Message: message}
}
