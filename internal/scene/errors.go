package scene

import (
	"fmt"
)

// TypeError reports a document scalar of the wrong kind, e.g. a string
// where a number was required.
type TypeError struct {
	Field string // document path of the offending value
	Want  string // expected kind ("number", "string", "list", "object")
	Value any    // the value actually found
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %T (%v)", e.Field, e.Want, e.Value, e.Value)
}

// ParseError reports a color string that is not valid hexadecimal.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: invalid color %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SchemaError reports a structurally invalid node: a missing or unrecognized
// type discriminant, or a missing required field. Path names the offending node.
type SchemaError struct {
	Path   string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// InvariantError reports an element variant that the decoder could not have
// produced. It marks an internal inconsistency and should be unreachable.
type InvariantError struct {
	Element any
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("unexpected element variant %T", e.Element)
}
