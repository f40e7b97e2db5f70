/*
File    : molcore/builtin/registry.go
Package : builtin
*/

// Package builtin implements the math.* semantic contract (spec.md §4.7):
// every builtin accepts and returns f64, and both execution engines call
// through the same registry so their results are identical by
// construction. Registration as a {Name, Func} table mirrors the
// teacher's std.Builtin{Name, Callback} pattern, generalized from
// GoMixObject arguments down to the JIT/interpreter's shared (f64...)
// contract.
package builtin

import "fmt"

// Func is a builtin's implementation: it receives already-evaluated
// arguments and returns a result or a domain/arity RuntimeError-shaped
// error.
type Func func(args []float64) (float64, error)

// entry pairs a registered name with its implementation and expected
// arity (-1 means variadic, unused by the current math set but kept for
// future builtins).
type entry struct {
	fn    Func
	arity int
}

var registry = map[string]entry{}

// register adds fn under name with a fixed arity, called from each
// builtin source file's init().
func register(name string, arity int, fn Func) {
	registry[name] = entry{fn: fn, arity: arity}
}

// Lookup reports whether name is a registered builtin.
func Lookup(name string) (Func, bool) {
	e, ok := registry[name]
	if !ok {
		return nil, false
	}
	return e.fn, true
}

// Call invokes the builtin named name (already lower-cased by the IR
// builder) with args, checking arity before dispatch.
func Call(name string, args []float64) (float64, error) {
	e, ok := registry[name]
	if !ok {
		return 0, fmt.Errorf("builtin: unknown function %q", name)
	}
	if e.arity >= 0 && e.arity != len(args) {
		return 0, fmt.Errorf("builtin: %s expects %d argument(s), got %d", name, e.arity, len(args))
	}
	return e.fn(args)
}
