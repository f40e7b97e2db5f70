/*
File    : molcore/ir/ir.go
Package : ir
*/
package ir

import "github.com/akashmaji946/molcore/ast"

// Program is the lowered form of ast.Program: an ordered list of
// Statements over resolved Paths.
type Program struct {
	Statements []Statement
}

// Statement is implemented by every statement-level IR node.
type Statement interface {
	stmtNode()
}

// ExprStmt evaluates X for its side effects.
type ExprStmt struct {
	X Expr
}

// Assign assigns Value (optionally at Index) into Target.
type Assign struct {
	Target Path
	Index  Expr // non-nil for `target[i] = value`
	Value  Expr
}

// Loop executes Body up to clamp(floor(Count), 0, 1024) times.
type Loop struct {
	Count Expr
	Body  Block
}

// ForEach assigns each element of Collection to Var and executes Body.
type ForEach struct {
	Var        Path
	Collection Expr
	Body       Block
}

// Return ends evaluation with the value of X.
type Return struct {
	X Expr
}

// Block is an ordered sequence of statements.
type Block struct {
	Statements []Statement
}

func (*ExprStmt) stmtNode() {}
func (*Assign) stmtNode()   {}
func (*Loop) stmtNode()     {}
func (*ForEach) stmtNode()  {}
func (*Return) stmtNode()   {}
func (*Block) stmtNode()    {}

// Expr is implemented by every expression-level IR node.
type Expr interface {
	exprNode()
}

// NumberLit is a numeric literal.
type NumberLit struct{ Value float64 }

// StringLit is a string literal.
type StringLit struct{ Value string }

// NullLit is the literal `null`.
type NullLit struct{}

// PathExpr reads a resolved Path, optionally indexed.
type PathExpr struct {
	Path  Path
	Index Expr
}

// LengthOf is `path.length`.
type LengthOf struct {
	Path Path
}

// ArrayLit is an array literal.
type ArrayLit struct {
	Elements []Expr
}

// StructField is one `name: value` entry of a StructLit.
type StructField struct {
	Name  string
	Value Expr
}

// StructLit is a struct literal, preserving field order.
type StructLit struct {
	Fields []StructField
}

// UnaryExpr applies Op to X. Op reuses ast.UnaryOp: the IR does not
// reinvent an operator vocabulary the frontend already defined.
type UnaryExpr struct {
	Op ast.UnaryOp
	X  Expr
}

// BinaryExpr applies Op to (Left, Right).
type BinaryExpr struct {
	Op    ast.BinaryOp
	Left  Expr
	Right Expr
}

// Ternary is `Cond ? Then : Else`. A break/continue arm is held as a Flow
// node; Else is nil exactly when the source had no `: else` arm
// (`cond ? break` / `cond ? continue`).
type Ternary struct {
	Cond Expr
	Then Expr
	Else Expr
}

// NullCoalesce is `Left ?? Right`.
type NullCoalesce struct {
	Left  Expr
	Right Expr
}

// Call invokes a builtin (its name lower-cased, e.g. "math.sqrt").
type Call struct {
	Builtin string
	Args    []Expr
}

// Flow is a `break` or `continue` appearing in expression position.
type Flow struct {
	Kind ast.FlowKind
}

func (*NumberLit) exprNode()    {}
func (*StringLit) exprNode()    {}
func (*NullLit) exprNode()      {}
func (*PathExpr) exprNode()     {}
func (*LengthOf) exprNode()     {}
func (*ArrayLit) exprNode()     {}
func (*StructLit) exprNode()    {}
func (*UnaryExpr) exprNode()    {}
func (*BinaryExpr) exprNode()   {}
func (*Ternary) exprNode()      {}
func (*NullCoalesce) exprNode() {}
func (*Call) exprNode()         {}
func (*Flow) exprNode()         {}
