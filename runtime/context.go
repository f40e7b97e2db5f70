/*
File    : molcore/runtime/context.go
Package : runtime
*/

// Package runtime implements the RuntimeContext shared by both execution
// engines (spec.md §3): a namespaced variable store over temp, variable,
// context, and query, with nested-struct auto-materialization for paths
// like `temp.a.b.c`. Construction follows the teacher's functional-options
// constructor idiom (NewEvaluator/NewScope), generalized from a single
// lexical scope chain to four fixed, flat namespace roots.
package runtime

import (
	"strings"

	"github.com/akashmaji946/molcore/internal/rtlog"
	"github.com/akashmaji946/molcore/ir"
	"github.com/akashmaji946/molcore/value"
)

// Context is the mutable variable store passed into every evaluation. It
// is owned exclusively by its caller (spec.md §5): concurrent mutation
// from multiple goroutines is undefined.
type Context struct {
	roots  map[string]*value.Struct
	logger rtlog.Logger
}

// Option configures a Context at construction time.
type Option func(*Context)

// New builds a Context with empty temp/variable/context/query roots,
// applying opts in order.
func New(opts ...Option) *Context {
	c := &Context{
		roots: map[string]*value.Struct{
			"temp":     value.NewStruct(),
			"variable": value.NewStruct(),
			"context":  value.NewStruct(),
			"query":    value.NewStruct(),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithQuery seeds query.<name> with v before evaluation begins.
// This bypasses the normal read-only check: queries are host-supplied
// facts, not script-writable state (SPEC_FULL.md §C).
func WithQuery(name string, v float64) Option {
	return func(c *Context) {
		c.roots["query"].Set(strings.ToLower(name), value.Number(v))
	}
}

// WithVariable seeds variable.<name> with v, accepting any Go value
// coercible via github.com/spf13/cast (numbers, strings, bools).
func WithVariable(name string, v any) Option {
	return func(c *Context) {
		c.roots["variable"].Set(strings.ToLower(name), CoerceHostValue(v))
	}
}

// WithLogger attaches a logger the Context's own operations emit
// trace-level events on (e.g. "assigned path").
func WithLogger(l rtlog.Logger) Option {
	return func(c *Context) { c.logger = l }
}

// Get reads the Value addressed by p. A missing read yields Null
// (spec.md §4.5), never an error: only malformed namespaces are errors,
// and those are rejected earlier by ir.ResolvePath.
func (c *Context) Get(p ir.Path) value.Value {
	root, ok := c.roots[p.Namespace]
	if !ok {
		return value.Null{}
	}
	cur := root
	for i, seg := range p.Segments {
		v, ok := cur.Get(seg)
		if !ok {
			return value.Null{}
		}
		if i == len(p.Segments)-1 {
			return v
		}
		next, ok := v.(*value.Struct)
		if !ok {
			return value.Null{}
		}
		cur = next
	}
	return cur // bare namespace read; Struct itself is a valid Value
}

// Set assigns v at p, materializing any missing intermediate structs
// along the way (spec.md §3). It refuses writes into the query.*
// namespace with ErrReadOnly (SPEC_FULL.md §C); seed query values only
// through WithQuery at construction time.
func (c *Context) Set(p ir.Path, v value.Value) error {
	if p.Namespace == "query" {
		return ErrReadOnly("cannot assign to query.%s: query values are read-only from script code", p.String())
	}
	root := c.roots[p.Namespace]
	if len(p.Segments) == 0 {
		return ErrReadOnly("cannot assign directly to namespace %q", p.Namespace)
	}
	cur := root
	for _, seg := range p.Segments[:len(p.Segments)-1] {
		existing, ok := cur.Get(seg)
		if !ok {
			next := value.NewStruct()
			cur.Set(seg, next)
			cur = next
			continue
		}
		next, ok := existing.(*value.Struct)
		if !ok {
			// An intermediate segment holds a non-struct; it must become
			// a container to continue the walk (see DESIGN.md's resolution
			// of the nested-materialization edge case).
			next = value.NewStruct()
			cur.Set(seg, next)
		}
		cur = next
	}
	leaf := p.Segments[len(p.Segments)-1]
	cur.Set(leaf, v)
	c.logger.Debug("assigned path", "path", p.String())
	return nil
}

// Fields returns the ordered fields of the struct value at p, for host
// inspection (SPEC_FULL.md §C). It reports false if p does not address a
// Struct.
func (c *Context) Fields(p ir.Path) ([]value.Field, bool) {
	v := c.Get(p)
	s, ok := v.(*value.Struct)
	if !ok {
		return nil, false
	}
	return s.Fields(), true
}
