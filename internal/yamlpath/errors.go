package yamlpath

import "fmt"

// SyntaxError reports an expression that cannot be compiled.
type SyntaxError struct {
	// Expr is the offending expression.
	Expr string
	// Pos is the byte offset the error was detected at.
	Pos int
	// Message describes the problem.
	Message string
	// Cause is the underlying error (if any), e.g. a bad regular expression.
	Cause error
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid path expression %q at offset %d: %s: %v", e.Expr, e.Pos, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid path expression %q at offset %d: %s", e.Expr, e.Pos, e.Message)
}

// Unwrap returns the underlying cause error.
func (e *SyntaxError) Unwrap() error {
	return e.Cause
}

// PathQueryError is returned when an expression that must match selects
// nothing in the source document.
type PathQueryError struct {
	// Expr is the path expression.
	Expr string
	// Source names the document the expression was evaluated against.
	Source string
}

// Error implements the error interface.
func (e *PathQueryError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("path %q matched no nodes", e.Expr)
	}
	return fmt.Sprintf("path %q matched no nodes in %s", e.Expr, e.Source)
}
