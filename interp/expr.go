/*
File    : molcore/interp/expr.go
Package : interp
*/
package interp

import (
	"math"

	"github.com/akashmaji946/molcore/ast"
	"github.com/akashmaji946/molcore/builtin"
	"github.com/akashmaji946/molcore/ir"
	"github.com/akashmaji946/molcore/value"
)

// evalExpr evaluates e against the current context. A non-SigNone signal
// means e was (or contained, via a ternary arm) a break/continue and v is
// not meaningful; callers must check sig before using v.
func (in *Interp) evalExpr(e ir.Expr) (value.Value, Signal, error) {
	switch n := e.(type) {
	case *ir.NumberLit:
		return value.Number(n.Value), SigNone, nil

	case *ir.StringLit:
		return value.String(n.Value), SigNone, nil

	case *ir.NullLit:
		return value.Null{}, SigNone, nil

	case *ir.PathExpr:
		v := in.ctx.Get(n.Path)
		if n.Index == nil {
			return v, SigNone, nil
		}
		idxV, sig, err := in.evalExpr(n.Index)
		if err != nil || sig != SigNone {
			return value.Null{}, sig, err
		}
		arr, ok := v.(*value.Array)
		if !ok {
			return value.Null{}, SigNone, nil
		}
		return arr.Get(int(math.Floor(idxV.AsNumber()))), SigNone, nil

	case *ir.LengthOf:
		v := in.ctx.Get(n.Path)
		arr, ok := v.(*value.Array)
		if !ok {
			return value.Number(0), SigNone, nil
		}
		return value.Number(len(arr.Elements)), SigNone, nil

	case *ir.ArrayLit:
		elems := make([]value.Value, len(n.Elements))
		for i, el := range n.Elements {
			v, sig, err := in.evalExpr(el)
			if err != nil || sig != SigNone {
				return value.Null{}, sig, err
			}
			elems[i] = v
		}
		return value.NewArray(elems...), SigNone, nil

	case *ir.StructLit:
		s := value.NewStruct()
		for _, f := range n.Fields {
			v, sig, err := in.evalExpr(f.Value)
			if err != nil || sig != SigNone {
				return value.Null{}, sig, err
			}
			s.Set(f.Name, v)
		}
		return s, SigNone, nil

	case *ir.UnaryExpr:
		return in.evalUnary(n)

	case *ir.BinaryExpr:
		return in.evalBinary(n)

	case *ir.Ternary:
		cond, sig, err := in.evalExpr(n.Cond)
		if err != nil || sig != SigNone {
			return value.Null{}, sig, err
		}
		if cond.Truthy() {
			if n.Then == nil {
				return value.Number(0), SigNone, nil
			}
			return in.evalExpr(n.Then)
		}
		if n.Else == nil {
			return value.Number(0), SigNone, nil
		}
		return in.evalExpr(n.Else)

	case *ir.NullCoalesce:
		l, sig, err := in.evalExpr(n.Left)
		if err != nil || sig != SigNone {
			return value.Null{}, sig, err
		}
		if l.Kind() != value.KindNull {
			return l, SigNone, nil
		}
		return in.evalExpr(n.Right)

	case *ir.Call:
		args := make([]float64, len(n.Args))
		for i, a := range n.Args {
			v, sig, err := in.evalExpr(a)
			if err != nil || sig != SigNone {
				return value.Null{}, sig, err
			}
			args[i] = v.AsNumber()
		}
		res, err := builtin.Call(n.Builtin, args)
		if err != nil {
			return value.Null{}, SigNone, err
		}
		return value.Number(res), SigNone, nil

	case *ir.Flow:
		if n.Kind == ast.FlowBreak {
			return value.Null{}, SigBreak, nil
		}
		return value.Null{}, SigContinue, nil

	default:
		return value.Null{}, SigNone, nil
	}
}

func (in *Interp) evalUnary(n *ir.UnaryExpr) (value.Value, Signal, error) {
	v, sig, err := in.evalExpr(n.X)
	if err != nil || sig != SigNone {
		return value.Null{}, sig, err
	}
	switch n.Op {
	case ast.UnaryNeg:
		return value.Number(-v.AsNumber()), SigNone, nil
	case ast.UnaryPos:
		return value.Number(v.AsNumber()), SigNone, nil
	case ast.UnaryNot:
		return boolNumber(!v.Truthy()), SigNone, nil
	default:
		return value.Null{}, SigNone, nil
	}
}
