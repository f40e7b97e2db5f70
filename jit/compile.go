/*
File    : molcore/jit/compile.go
Package : jit
*/
package jit

import (
	"math"

	"github.com/akashmaji946/molcore/ast"
	"github.com/akashmaji946/molcore/builtin"
	"github.com/akashmaji946/molcore/ir"
	"github.com/akashmaji946/molcore/runtime"
	"github.com/akashmaji946/molcore/value"
	"github.com/zeebo/xxh3"
)

// hashSource is the cache's fast lookup key (spec.md §4.4). Exact source
// equality is re-verified on every hit, so a collision never returns the
// wrong compiled module.
func hashSource(source string) uint64 {
	return xxh3.HashString(source)
}

// compiler tracks the enclosing-loop depth seen so far during a single
// compilation pass, so a bare break/continue outside any loop is rejected
// at compile time (as a control_flow runtime.RuntimeError returned from
// compilation) instead of when the program runs (spec.md §4.6,
// in contrast to package interp's runtime ControlFlowError check).
type compiler struct {
	loopDepth int
}

// sigExpr is the full, signal-aware compiled form of an ir.Expr: needed
// wherever a break/continue might be embedded via a ternary arm.
type sigExpr func(ctx *runtime.Context) (value.Value, signal, error)

func (c *compiler) compileNum(e ir.Expr) (numFunc, error) {
	full, err := c.compileExpr(e)
	if err != nil {
		return nil, err
	}
	return func(ctx *runtime.Context) (float64, error) {
		v, _, err := full(ctx)
		if err != nil {
			return 0, err
		}
		return v.AsNumber(), nil
	}, nil
}

func (c *compiler) compileExpr(e ir.Expr) (sigExpr, error) {
	switch n := e.(type) {
	case *ir.NumberLit:
		v := value.Number(n.Value)
		return func(*runtime.Context) (value.Value, signal, error) { return v, sigNone, nil }, nil

	case *ir.StringLit:
		v := value.String(n.Value)
		return func(*runtime.Context) (value.Value, signal, error) { return v, sigNone, nil }, nil

	case *ir.NullLit:
		return func(*runtime.Context) (value.Value, signal, error) { return value.Null{}, sigNone, nil }, nil

	case *ir.PathExpr:
		return c.compilePath(n)

	case *ir.LengthOf:
		p := n.Path
		return func(ctx *runtime.Context) (value.Value, signal, error) {
			arr, ok := ctx.Get(p).(*value.Array)
			if !ok {
				return value.Number(0), sigNone, nil
			}
			return value.Number(len(arr.Elements)), sigNone, nil
		}, nil

	case *ir.ArrayLit:
		elemFns := make([]sigExpr, len(n.Elements))
		for i, el := range n.Elements {
			fn, err := c.compileExpr(el)
			if err != nil {
				return nil, err
			}
			elemFns[i] = fn
		}
		return func(ctx *runtime.Context) (value.Value, signal, error) {
			elems := make([]value.Value, len(elemFns))
			for i, fn := range elemFns {
				v, sig, err := fn(ctx)
				if err != nil || sig != sigNone {
					return value.Null{}, sig, err
				}
				elems[i] = v
			}
			return value.NewArray(elems...), sigNone, nil
		}, nil

	case *ir.StructLit:
		names := make([]string, len(n.Fields))
		fieldFns := make([]sigExpr, len(n.Fields))
		for i, f := range n.Fields {
			fn, err := c.compileExpr(f.Value)
			if err != nil {
				return nil, err
			}
			names[i] = f.Name
			fieldFns[i] = fn
		}
		return func(ctx *runtime.Context) (value.Value, signal, error) {
			s := value.NewStruct()
			for i, fn := range fieldFns {
				v, sig, err := fn(ctx)
				if err != nil || sig != sigNone {
					return value.Null{}, sig, err
				}
				s.Set(names[i], v)
			}
			return s, sigNone, nil
		}, nil

	case *ir.UnaryExpr:
		return c.compileUnary(n)

	case *ir.BinaryExpr:
		return c.compileBinary(n)

	case *ir.Ternary:
		return c.compileTernary(n)

	case *ir.NullCoalesce:
		left, err := c.compileExpr(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := c.compileExpr(n.Right)
		if err != nil {
			return nil, err
		}
		return func(ctx *runtime.Context) (value.Value, signal, error) {
			l, sig, err := left(ctx)
			if err != nil || sig != sigNone {
				return value.Null{}, sig, err
			}
			if l.Kind() != value.KindNull {
				return l, sigNone, nil
			}
			return right(ctx)
		}, nil

	case *ir.Call:
		argFns := make([]sigExpr, len(n.Args))
		for i, a := range n.Args {
			fn, err := c.compileExpr(a)
			if err != nil {
				return nil, err
			}
			argFns[i] = fn
		}
		name := n.Builtin
		return func(ctx *runtime.Context) (value.Value, signal, error) {
			args := make([]float64, len(argFns))
			for i, fn := range argFns {
				v, sig, err := fn(ctx)
				if err != nil || sig != sigNone {
					return value.Null{}, sig, err
				}
				args[i] = v.AsNumber()
			}
			res, err := builtin.Call(name, args)
			if err != nil {
				return value.Null{}, sigNone, err
			}
			return value.Number(res), sigNone, nil
		}, nil

	case *ir.Flow:
		if c.loopDepth == 0 {
			return nil, runtime.ErrControlFlow("%s used outside any loop", n.Kind)
		}
		sig := sigBreak
		if n.Kind == ast.FlowContinue {
			sig = sigContinue
		}
		return func(*runtime.Context) (value.Value, signal, error) { return value.Null{}, sig, nil }, nil

	default:
		return nil, runtime.ErrControlFlow("jit: unsupported expression node")
	}
}

func (c *compiler) compilePath(n *ir.PathExpr) (sigExpr, error) {
	p := n.Path
	if n.Index == nil {
		return func(ctx *runtime.Context) (value.Value, signal, error) {
			return ctx.Get(p), sigNone, nil
		}, nil
	}
	idxFn, err := c.compileExpr(n.Index)
	if err != nil {
		return nil, err
	}
	return func(ctx *runtime.Context) (value.Value, signal, error) {
		idxV, sig, err := idxFn(ctx)
		if err != nil || sig != sigNone {
			return value.Null{}, sig, err
		}
		arr, ok := ctx.Get(p).(*value.Array)
		if !ok {
			return value.Null{}, sigNone, nil
		}
		return arr.Get(int(math.Floor(idxV.AsNumber()))), sigNone, nil
	}, nil
}

func (c *compiler) compileUnary(n *ir.UnaryExpr) (sigExpr, error) {
	x, err := c.compileExpr(n.X)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case ast.UnaryNeg:
		return func(ctx *runtime.Context) (value.Value, signal, error) {
			v, sig, err := x(ctx)
			if err != nil || sig != sigNone {
				return value.Null{}, sig, err
			}
			return value.Number(-v.AsNumber()), sigNone, nil
		}, nil
	case ast.UnaryPos:
		return func(ctx *runtime.Context) (value.Value, signal, error) {
			v, sig, err := x(ctx)
			if err != nil || sig != sigNone {
				return value.Null{}, sig, err
			}
			return value.Number(v.AsNumber()), sigNone, nil
		}, nil
	case ast.UnaryNot:
		return func(ctx *runtime.Context) (value.Value, signal, error) {
			v, sig, err := x(ctx)
			if err != nil || sig != sigNone {
				return value.Null{}, sig, err
			}
			return value.Number(boolNumber(!v.Truthy())), sigNone, nil
		}, nil
	default:
		return nil, runtime.ErrControlFlow("jit: unknown unary operator %q", n.Op)
	}
}

func (c *compiler) compileBinary(n *ir.BinaryExpr) (sigExpr, error) {
	left, err := c.compileExpr(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := c.compileExpr(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case ast.BinAnd:
		return func(ctx *runtime.Context) (value.Value, signal, error) {
			l, sig, err := left(ctx)
			if err != nil || sig != sigNone {
				return value.Null{}, sig, err
			}
			if !l.Truthy() {
				return value.Number(0), sigNone, nil
			}
			r, sig, err := right(ctx)
			if err != nil || sig != sigNone {
				return value.Null{}, sig, err
			}
			return value.Number(boolNumber(r.Truthy())), sigNone, nil
		}, nil
	case ast.BinOr:
		return func(ctx *runtime.Context) (value.Value, signal, error) {
			l, sig, err := left(ctx)
			if err != nil || sig != sigNone {
				return value.Null{}, sig, err
			}
			if l.Truthy() {
				return value.Number(1), sigNone, nil
			}
			r, sig, err := right(ctx)
			if err != nil || sig != sigNone {
				return value.Null{}, sig, err
			}
			return value.Number(boolNumber(r.Truthy())), sigNone, nil
		}, nil
	}

	op := n.Op
	return func(ctx *runtime.Context) (value.Value, signal, error) {
		l, sig, err := left(ctx)
		if err != nil || sig != sigNone {
			return value.Null{}, sig, err
		}
		r, sig, err := right(ctx)
		if err != nil || sig != sigNone {
			return value.Null{}, sig, err
		}
		a, b := l.AsNumber(), r.AsNumber()
		switch op {
		case ast.BinAdd:
			return value.Number(a + b), sigNone, nil
		case ast.BinSub:
			return value.Number(a - b), sigNone, nil
		case ast.BinMul:
			return value.Number(a * b), sigNone, nil
		case ast.BinDiv:
			if b == 0 {
				return value.Number(0), sigNone, nil
			}
			return value.Number(a / b), sigNone, nil
		case ast.BinEq:
			return value.Number(boolNumber(a == b)), sigNone, nil
		case ast.BinNe:
			return value.Number(boolNumber(a != b)), sigNone, nil
		case ast.BinLt:
			return value.Number(boolNumber(a < b)), sigNone, nil
		case ast.BinLe:
			return value.Number(boolNumber(a <= b)), sigNone, nil
		case ast.BinGt:
			return value.Number(boolNumber(a > b)), sigNone, nil
		case ast.BinGe:
			return value.Number(boolNumber(a >= b)), sigNone, nil
		default:
			return value.Null{}, sigNone, runtime.ErrControlFlow("jit: unknown binary operator %q", op)
		}
	}, nil
}

func (c *compiler) compileTernary(n *ir.Ternary) (sigExpr, error) {
	cond, err := c.compileExpr(n.Cond)
	if err != nil {
		return nil, err
	}
	var then, els sigExpr
	if n.Then != nil {
		if then, err = c.compileExpr(n.Then); err != nil {
			return nil, err
		}
	}
	if n.Else != nil {
		if els, err = c.compileExpr(n.Else); err != nil {
			return nil, err
		}
	}
	return func(ctx *runtime.Context) (value.Value, signal, error) {
		cv, sig, err := cond(ctx)
		if err != nil || sig != sigNone {
			return value.Null{}, sig, err
		}
		if cv.Truthy() {
			if then == nil {
				return value.Number(0), sigNone, nil
			}
			return then(ctx)
		}
		if els == nil {
			return value.Number(0), sigNone, nil
		}
		return els(ctx)
	}, nil
}

func (c *compiler) compileStatements(stmts []ir.Statement) ([]sigFunc, error) {
	out := make([]sigFunc, len(stmts))
	for i, s := range stmts {
		fn, err := c.compileStatement(s)
		if err != nil {
			return nil, err
		}
		out[i] = fn
	}
	return out, nil
}

func (c *compiler) compileBlock(b ir.Block) ([]sigFunc, error) {
	return c.compileStatements(b.Statements)
}

func runBlock(body []sigFunc, ctx *runtime.Context) (signal, float64, error) {
	last := 0.0
	for _, stmt := range body {
		sig, v, err := stmt(ctx)
		if err != nil {
			return sigNone, 0, err
		}
		if sig != sigNone {
			return sig, v, nil
		}
		last = v
	}
	return sigNone, last, nil
}

func (c *compiler) compileStatement(s ir.Statement) (sigFunc, error) {
	switch n := s.(type) {
	case *ir.ExprStmt:
		x, err := c.compileExpr(n.X)
		if err != nil {
			return nil, err
		}
		return func(ctx *runtime.Context) (signal, float64, error) {
			v, sig, err := x(ctx)
			if err != nil || sig != sigNone {
				return sig, 0, err
			}
			return sigNone, v.AsNumber(), nil
		}, nil

	case *ir.Assign:
		val, err := c.compileExpr(n.Value)
		if err != nil {
			return nil, err
		}
		target := n.Target
		var idxFn sigExpr
		if n.Index != nil {
			if idxFn, err = c.compileExpr(n.Index); err != nil {
				return nil, err
			}
		}
		return func(ctx *runtime.Context) (signal, float64, error) {
			v, sig, err := val(ctx)
			if err != nil || sig != sigNone {
				return sig, 0, err
			}
			if idxFn != nil {
				idxV, sig, err := idxFn(ctx)
				if err != nil || sig != sigNone {
					return sig, 0, err
				}
				cur := ctx.Get(target)
				arr, ok := cur.(*value.Array)
				if !ok {
					return sigNone, 0, runtime.ErrReadOnly("cannot index-assign into non-array path %q", target.String())
				}
				arr.Set(int(math.Floor(idxV.AsNumber())), v)
				return sigNone, 0, nil
			}
			if err := ctx.Set(target, v); err != nil {
				return sigNone, 0, err
			}
			return sigNone, 0, nil
		}, nil

	case *ir.Loop:
		count, err := c.compileExpr(n.Count)
		if err != nil {
			return nil, err
		}
		c.loopDepth++
		body, err := c.compileBlock(n.Body)
		c.loopDepth--
		if err != nil {
			return nil, err
		}
		return func(ctx *runtime.Context) (signal, float64, error) {
			countV, sig, err := count(ctx)
			if err != nil || sig != sigNone {
				return sig, 0, err
			}
			iterations := int(math.Floor(countV.AsNumber()))
			if iterations < 0 {
				iterations = 0
			}
			if iterations > maxLoopIterations {
				iterations = maxLoopIterations
			}
			last := 0.0
			for i := 0; i < iterations; i++ {
				sig, v, err := runBlock(body, ctx)
				if err != nil {
					return sigNone, 0, err
				}
				switch sig {
				case sigBreak:
					return sigNone, last, nil
				case sigReturn:
					return sigReturn, v, nil
				}
				last = v
			}
			return sigNone, last, nil
		}, nil

	case *ir.ForEach:
		coll, err := c.compileExpr(n.Collection)
		if err != nil {
			return nil, err
		}
		v := n.Var
		c.loopDepth++
		body, err := c.compileBlock(n.Body)
		c.loopDepth--
		if err != nil {
			return nil, err
		}
		return func(ctx *runtime.Context) (signal, float64, error) {
			collV, sig, err := coll(ctx)
			if err != nil || sig != sigNone {
				return sig, 0, err
			}
			arr, ok := collV.(*value.Array)
			if !ok {
				return sigNone, 0, nil
			}
			last := 0.0
			for _, elem := range arr.Elements {
				if err := ctx.Set(v, elem.Clone()); err != nil {
					return sigNone, 0, err
				}
				sig, rv, err := runBlock(body, ctx)
				if err != nil {
					return sigNone, 0, err
				}
				switch sig {
				case sigBreak:
					return sigNone, last, nil
				case sigReturn:
					return sigReturn, rv, nil
				}
				last = rv
			}
			return sigNone, last, nil
		}, nil

	case *ir.Return:
		x, err := c.compileExpr(n.X)
		if err != nil {
			return nil, err
		}
		return func(ctx *runtime.Context) (signal, float64, error) {
			v, sig, err := x(ctx)
			if err != nil || sig != sigNone {
				return sig, 0, err
			}
			return sigReturn, v.AsNumber(), nil
		}, nil

	case *ir.Block:
		body, err := c.compileBlock(*n)
		if err != nil {
			return nil, err
		}
		return func(ctx *runtime.Context) (signal, float64, error) {
			return runBlock(body, ctx)
		}, nil

	default:
		return nil, runtime.ErrControlFlow("jit: unsupported statement node")
	}
}
