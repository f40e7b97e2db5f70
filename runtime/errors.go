/*
File    : molcore/runtime/errors.go
Package : runtime
*/
package runtime

import "fmt"

// RuntimeError is the spec's RuntimeError taxon: control-flow misuse at
// run time (break/continue outside a loop), writes to the read-only
// query.* namespace, and malformed host input. It is returned by both
// engines through the same Kind vocabulary so callers can switch on it
// without caring which engine produced it.
type RuntimeError struct {
	Kind    string
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error (%s): %s", e.Kind, e.Message)
}

const (
	KindControlFlow = "control_flow"
	KindReadOnly    = "read_only"
	KindBadInput    = "bad_input"
)

func errControlFlow(format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: KindControlFlow, Message: fmt.Sprintf(format, args...)}
}

func errReadOnly(format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: KindReadOnly, Message: fmt.Sprintf(format, args...)}
}

// ErrControlFlow reports break/continue used outside any enclosing loop
// (spec.md §4.5 "Flow validation").
func ErrControlFlow(format string, args ...any) *RuntimeError { return errControlFlow(format, args...) }

// ErrReadOnly reports an assignment into the query.* namespace
// (SPEC_FULL.md §C: query values are read-only from script code).
func ErrReadOnly(format string, args ...any) *RuntimeError { return errReadOnly(format, args...) }
