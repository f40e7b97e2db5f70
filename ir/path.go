/*
File    : molcore/ir/path.go
Package : ir
*/

// Package ir is the sole interface between the frontend (lexer/parser/ast)
// and both execution engines. It mirrors ast.Expr/ast.Statement one for
// one, but resolves every path to a canonical, case-folded Path and every
// builtin name to its lower-cased form, so neither engine repeats that
// work (spec.md §4.3).
package ir

import (
	"fmt"
	"strings"

	"github.com/akashmaji946/molcore/ast"
	"github.com/samber/lo"
)

// Path is a resolved, canonical QualifiedName: a namespace plus the
// case-folded segments beneath it.
type Path struct {
	Namespace string
	Segments  []string
}

// namespaceAliases maps every accepted spelling of a namespace head to its
// canonical name (spec.md §3: `t` -> `temp`, `v` -> `variable`).
var namespaceAliases = map[string]string{
	"t":        "temp",
	"temp":     "temp",
	"v":        "variable",
	"variable": "variable",
	"context":  "context",
	"query":    "query",
}

// ResolvePath normalizes a parsed QualifiedName into a Path: the first
// segment is case-folded and alias-expanded, the rest are case-folded.
func ResolvePath(q ast.QualifiedName) (Path, error) {
	if len(q.Segments) == 0 {
		return Path{}, fmt.Errorf("ir: empty qualified name")
	}
	head := strings.ToLower(q.Segments[0])
	ns, ok := namespaceAliases[head]
	if !ok {
		return Path{}, fmt.Errorf("ir: unknown namespace %q", q.Segments[0])
	}
	segs := lo.Map(q.Segments[1:], func(s string, _ int) string {
		return strings.ToLower(s)
	})
	return Path{Namespace: ns, Segments: segs}, nil
}

// String renders the path dotted, e.g. "temp.location.z".
func (p Path) String() string {
	if len(p.Segments) == 0 {
		return p.Namespace
	}
	return p.Namespace + "." + strings.Join(p.Segments, ".")
}

// Join returns the path addressing one more segment beneath p.
func (p Path) Join(seg string) Path {
	segs := make([]string, len(p.Segments)+1)
	copy(segs, p.Segments)
	segs[len(p.Segments)] = strings.ToLower(seg)
	return Path{Namespace: p.Namespace, Segments: segs}
}

// Parent splits off the last segment, reporting false if p addresses a
// bare namespace with no segments.
func (p Path) Parent() (parent Path, leaf string, ok bool) {
	if len(p.Segments) == 0 {
		return Path{}, "", false
	}
	return Path{Namespace: p.Namespace, Segments: p.Segments[:len(p.Segments)-1]},
		p.Segments[len(p.Segments)-1], true
}
