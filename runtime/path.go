/*
File    : molcore/runtime/path.go
Package : runtime
*/
package runtime

import (
	"strings"

	"github.com/akashmaji946/molcore/ast"
	"github.com/akashmaji946/molcore/ir"
)

// ParsePathString resolves a dotted path string like "temp.location.z"
// into an ir.Path, for host callers that want to read back a qualified
// name (spec.md §6) without building an ast.QualifiedName by hand.
func ParsePathString(s string) (ir.Path, error) {
	segs := strings.Split(s, ".")
	return ir.ResolvePath(ast.NewQualifiedName(segs...))
}
