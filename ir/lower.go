/*
File    : molcore/ir/lower.go
Package : ir
*/
package ir

import (
	"errors"
	"fmt"
	"strings"

	"github.com/akashmaji946/molcore/ast"
)

// ErrNotPure is returned by LowerExpression (the JIT-cache fast path) for
// any program that is not a single pure numeric expression (spec.md §4.3,
// the LowerError taxon). It is swallowed by the dispatcher and never
// user-visible.
var ErrNotPure = errors.New("ir: program is not a pure numeric expression")

// LowerProgram lowers an entire AST Program into an IR Program. It fails
// only when a path's head is not a known namespace (see ResolvePath); the
// parser accepts any identifier there.
func LowerProgram(prog *ast.Program) (*Program, error) {
	stmts := make([]Statement, 0, len(prog.Statements))
	for _, s := range prog.Statements {
		st, err := lowerStatement(s)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, st)
	}
	return &Program{Statements: stmts}, nil
}

// LowerExpression implements the JIT-cache fast path: a program qualifies
// only if it is exactly one statement, that statement is `return expr` or
// a bare expression statement, and expr is pure (spec.md glossary).
func LowerExpression(prog *ast.Program) (Expr, error) {
	if len(prog.Statements) != 1 {
		return nil, ErrNotPure
	}
	var x ast.Expr
	switch s := prog.Statements[0].(type) {
	case *ast.Return:
		x = s.X
	case *ast.ExprStatement:
		x = s.X
	default:
		return nil, ErrNotPure
	}
	if !isPureExpr(x) {
		return nil, ErrNotPure
	}
	return lowerExpr(x)
}

// isPureExpr reports whether e and everything beneath it is eligible for
// the cached JIT-expression path: no arrays, structs, strings, or flow
// markers anywhere in the tree.
func isPureExpr(e ast.Expr) bool {
	switch n := e.(type) {
	case *ast.NumberLit, *ast.NullLit:
		return true
	case *ast.StringLit, *ast.ArrayLit, *ast.StructLit, *ast.FlowExpr:
		return false
	case *ast.PathExpr:
		return n.Index == nil || isPureExpr(n.Index)
	case *ast.LengthOfExpr:
		return true
	case *ast.UnaryExpr:
		return isPureExpr(n.X)
	case *ast.BinaryExpr:
		return isPureExpr(n.Left) && isPureExpr(n.Right)
	case *ast.TernaryExpr:
		if _, ok := n.Then.(*ast.FlowExpr); ok {
			return false
		}
		if n.Else == nil {
			return false
		}
		if _, ok := n.Else.(*ast.FlowExpr); ok {
			return false
		}
		return isPureExpr(n.Cond) && isPureExpr(n.Then) && isPureExpr(n.Else)
	case *ast.NullCoalesceExpr:
		return isPureExpr(n.Left) && isPureExpr(n.Right)
	case *ast.CallExpr:
		for _, a := range n.Args {
			if !isPureExpr(a) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func lowerStatement(s ast.Statement) (Statement, error) {
	switch n := s.(type) {
	case *ast.ExprStatement:
		x, err := lowerExpr(n.X)
		if err != nil {
			return nil, err
		}
		return &ExprStmt{X: x}, nil

	case *ast.Assignment:
		target, err := ResolvePath(n.Target)
		if err != nil {
			return nil, err
		}
		var idx Expr
		if n.Index != nil {
			if idx, err = lowerExpr(n.Index); err != nil {
				return nil, err
			}
		}
		val, err := lowerExpr(n.Value)
		if err != nil {
			return nil, err
		}
		return &Assign{Target: target, Index: idx, Value: val}, nil

	case *ast.Loop:
		count, err := lowerExpr(n.Count)
		if err != nil {
			return nil, err
		}
		body, err := lowerBlock(n.Body)
		if err != nil {
			return nil, err
		}
		return &Loop{Count: count, Body: body}, nil

	case *ast.ForEach:
		v, err := ResolvePath(n.Var)
		if err != nil {
			return nil, err
		}
		coll, err := lowerExpr(n.Collection)
		if err != nil {
			return nil, err
		}
		body, err := lowerBlock(n.Body)
		if err != nil {
			return nil, err
		}
		return &ForEach{Var: v, Collection: coll, Body: body}, nil

	case *ast.Return:
		x, err := lowerExpr(n.X)
		if err != nil {
			return nil, err
		}
		return &Return{X: x}, nil

	case *ast.Block:
		b, err := lowerBlock(*n)
		if err != nil {
			return nil, err
		}
		return &b, nil

	default:
		return nil, fmt.Errorf("ir: unknown statement type %T", s)
	}
}

func lowerBlock(b ast.Block) (Block, error) {
	stmts := make([]Statement, 0, len(b.Statements))
	for _, s := range b.Statements {
		st, err := lowerStatement(s)
		if err != nil {
			return Block{}, err
		}
		stmts = append(stmts, st)
	}
	return Block{Statements: stmts}, nil
}

func lowerExpr(e ast.Expr) (Expr, error) {
	switch n := e.(type) {
	case *ast.NumberLit:
		return &NumberLit{Value: n.Value}, nil

	case *ast.StringLit:
		return &StringLit{Value: n.Value}, nil

	case *ast.NullLit:
		return &NullLit{}, nil

	case *ast.PathExpr:
		p, err := ResolvePath(n.Name)
		if err != nil {
			return nil, err
		}
		var idx Expr
		if n.Index != nil {
			if idx, err = lowerExpr(n.Index); err != nil {
				return nil, err
			}
		}
		return &PathExpr{Path: p, Index: idx}, nil

	case *ast.LengthOfExpr:
		p, err := ResolvePath(n.Path)
		if err != nil {
			return nil, err
		}
		return &LengthOf{Path: p}, nil

	case *ast.ArrayLit:
		elems := make([]Expr, len(n.Elements))
		for i, el := range n.Elements {
			x, err := lowerExpr(el)
			if err != nil {
				return nil, err
			}
			elems[i] = x
		}
		return &ArrayLit{Elements: elems}, nil

	case *ast.StructLit:
		fields := make([]StructField, len(n.Fields))
		for i, f := range n.Fields {
			x, err := lowerExpr(f.Value)
			if err != nil {
				return nil, err
			}
			fields[i] = StructField{Name: f.Name, Value: x}
		}
		return &StructLit{Fields: fields}, nil

	case *ast.UnaryExpr:
		x, err := lowerExpr(n.X)
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: n.Op, X: x}, nil

	case *ast.BinaryExpr:
		l, err := lowerExpr(n.Left)
		if err != nil {
			return nil, err
		}
		r, err := lowerExpr(n.Right)
		if err != nil {
			return nil, err
		}
		return &BinaryExpr{Op: n.Op, Left: l, Right: r}, nil

	case *ast.TernaryExpr:
		cond, err := lowerExpr(n.Cond)
		if err != nil {
			return nil, err
		}
		var then, els Expr
		if n.Then != nil {
			if then, err = lowerExpr(n.Then); err != nil {
				return nil, err
			}
		}
		if n.Else != nil {
			if els, err = lowerExpr(n.Else); err != nil {
				return nil, err
			}
		}
		return &Ternary{Cond: cond, Then: then, Else: els}, nil

	case *ast.NullCoalesceExpr:
		l, err := lowerExpr(n.Left)
		if err != nil {
			return nil, err
		}
		r, err := lowerExpr(n.Right)
		if err != nil {
			return nil, err
		}
		return &NullCoalesce{Left: l, Right: r}, nil

	case *ast.CallExpr:
		args := make([]Expr, len(n.Args))
		for i, a := range n.Args {
			x, err := lowerExpr(a)
			if err != nil {
				return nil, err
			}
			args[i] = x
		}
		return &Call{Builtin: strings.ToLower(n.Builtin), Args: args}, nil

	case *ast.FlowExpr:
		return &Flow{Kind: n.Kind}, nil

	default:
		return nil, fmt.Errorf("ir: unknown expression type %T", e)
	}
}
