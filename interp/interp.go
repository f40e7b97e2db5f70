/*
File    : molcore/interp/interp.go
Package : interp
*/

// Package interp implements the tree-walking interpreter (spec.md §4.5):
// the authoritative, first-class execution engine and the differential
// oracle the JIT backend is tested against. State is (ctx, loopDepth,
// signal), mirroring the teacher's eval package's
// Break/Continue/ReturnValue-as-signal propagation, generalized from
// sentinel GoMixObject values to an explicit Signal enum threaded through
// every eval call.
package interp

import (
	"fmt"
	"math"

	"github.com/akashmaji946/molcore/ast"
	"github.com/akashmaji946/molcore/internal/rtlog"
	"github.com/akashmaji946/molcore/ir"
	"github.com/akashmaji946/molcore/runtime"
	"github.com/akashmaji946/molcore/value"
)

// Signal is the interpreter's control-flow propagation token.
type Signal int

const (
	SigNone Signal = iota
	SigBreak
	SigContinue
	SigReturn
)

const maxLoopIterations = 1024

// Interp walks an ir.Program against a runtime.Context.
type Interp struct {
	ctx       *runtime.Context
	logger    rtlog.Logger
	loopDepth int
}

// Option configures an Interp at construction time.
type Option func(*Interp)

// WithLogger stores a logger on the Interp. Run emits no events to it.
func WithLogger(l rtlog.Logger) Option {
	return func(in *Interp) { in.logger = l }
}

// New builds an Interp over ctx.
func New(ctx *runtime.Context, opts ...Option) *Interp {
	in := &Interp{ctx: ctx}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Run executes prog to completion and returns the numeric result: the
// value of the last Return encountered, or of the last expression
// statement evaluated, or 0.0 if neither occurred (spec.md §4.6, shared
// with the JIT backend's whole-program result rule).
func (in *Interp) Run(prog *ir.Program) (float64, error) {
	last := value.Value(value.Number(0))
	sig, retVal, err := in.execBlock(ir.Block{Statements: prog.Statements}, &last)
	if err != nil {
		return 0, err
	}
	if sig == SigReturn {
		return retVal.AsNumber(), nil
	}
	return last.AsNumber(), nil
}

func (in *Interp) execBlock(b ir.Block, last *value.Value) (Signal, value.Value, error) {
	for _, stmt := range b.Statements {
		sig, v, err := in.execStatement(stmt, last)
		if err != nil {
			return SigNone, nil, err
		}
		if sig != SigNone {
			return sig, v, nil
		}
	}
	return SigNone, nil, nil
}

func (in *Interp) execStatement(s ir.Statement, last *value.Value) (Signal, value.Value, error) {
	switch n := s.(type) {
	case *ir.ExprStmt:
		v, sig, err := in.evalExpr(n.X)
		if err != nil {
			return SigNone, nil, err
		}
		if sig != SigNone {
			return in.resolveFlowSignal(sig)
		}
		*last = v
		return SigNone, nil, nil

	case *ir.Assign:
		v, sig, err := in.evalExpr(n.Value)
		if err != nil {
			return SigNone, nil, err
		}
		if sig != SigNone {
			return in.resolveFlowSignal(sig)
		}
		if n.Index != nil {
			idxV, sig, err := in.evalExpr(n.Index)
			if err != nil {
				return SigNone, nil, err
			}
			if sig != SigNone {
				return in.resolveFlowSignal(sig)
			}
			cur := in.ctx.Get(n.Target)
			arr, ok := cur.(*value.Array)
			if !ok {
				return SigNone, nil, runtime.ErrReadOnly("cannot index-assign into non-array path %q", n.Target.String())
			}
			arr.Set(int(math.Floor(idxV.AsNumber())), v)
			return SigNone, nil, nil
		}
		if err := in.ctx.Set(n.Target, v); err != nil {
			return SigNone, nil, err
		}
		return SigNone, nil, nil

	case *ir.Loop:
		return in.execLoop(n, last)

	case *ir.ForEach:
		return in.execForEach(n, last)

	case *ir.Return:
		v, sig, err := in.evalExpr(n.X)
		if err != nil {
			return SigNone, nil, err
		}
		if sig != SigNone {
			return in.resolveFlowSignal(sig)
		}
		return SigReturn, v, nil

	case *ir.Block:
		return in.execBlock(*n, last)

	default:
		return SigNone, nil, fmt.Errorf("interp: unknown statement type %T", s)
	}
}

// resolveFlowSignal validates a bare break/continue against the current
// loop depth (spec.md §4.5 "Flow validation").
func (in *Interp) resolveFlowSignal(sig Signal) (Signal, value.Value, error) {
	if in.loopDepth == 0 && (sig == SigBreak || sig == SigContinue) {
		kind := "break"
		if sig == SigContinue {
			kind = "continue"
		}
		return SigNone, nil, runtime.ErrControlFlow("%s used outside any loop", kind)
	}
	return sig, nil, nil
}

func (in *Interp) execLoop(n *ir.Loop, last *value.Value) (Signal, value.Value, error) {
	countV, sig, err := in.evalExpr(n.Count)
	if err != nil {
		return SigNone, nil, err
	}
	if sig != SigNone {
		return in.resolveFlowSignal(sig)
	}
	count := int(math.Floor(countV.AsNumber()))
	if count < 0 {
		count = 0
	}
	if count > maxLoopIterations {
		count = maxLoopIterations
	}

	in.loopDepth++
	defer func() { in.loopDepth-- }()

	for i := 0; i < count; i++ {
		sig, v, err := in.execBlock(n.Body, last)
		if err != nil {
			return SigNone, nil, err
		}
		switch sig {
		case SigBreak:
			return SigNone, nil, nil
		case SigReturn:
			return SigReturn, v, nil
		case SigContinue, SigNone:
			// fall through to next iteration
		}
	}
	return SigNone, nil, nil
}

func (in *Interp) execForEach(n *ir.ForEach, last *value.Value) (Signal, value.Value, error) {
	collV, sig, err := in.evalExpr(n.Collection)
	if err != nil {
		return SigNone, nil, err
	}
	if sig != SigNone {
		return in.resolveFlowSignal(sig)
	}
	arr, ok := collV.(*value.Array)
	if !ok {
		return SigNone, nil, nil // non-array collection: iteration count is 0
	}

	in.loopDepth++
	defer func() { in.loopDepth-- }()

	for _, elem := range arr.Elements {
		if err := in.ctx.Set(n.Var, elem.Clone()); err != nil {
			return SigNone, nil, err
		}
		sig, v, err := in.execBlock(n.Body, last)
		if err != nil {
			return SigNone, nil, err
		}
		switch sig {
		case SigBreak:
			return SigNone, nil, nil
		case SigReturn:
			return SigReturn, v, nil
		case SigContinue, SigNone:
		}
	}
	return SigNone, nil, nil
}

func (in *Interp) evalBinary(n *ir.BinaryExpr) (value.Value, Signal, error) {
	l, sig, err := in.evalExpr(n.Left)
	if err != nil || sig != SigNone {
		return value.Null{}, sig, err
	}

	// Logical operators short-circuit on truthy before evaluating Right.
	switch n.Op {
	case ast.BinAnd:
		if !l.Truthy() {
			return value.Number(0), SigNone, nil
		}
		r, sig, err := in.evalExpr(n.Right)
		if err != nil || sig != SigNone {
			return value.Null{}, sig, err
		}
		return boolNumber(r.Truthy()), SigNone, nil
	case ast.BinOr:
		if l.Truthy() {
			return value.Number(1), SigNone, nil
		}
		r, sig, err := in.evalExpr(n.Right)
		if err != nil || sig != SigNone {
			return value.Null{}, sig, err
		}
		return boolNumber(r.Truthy()), SigNone, nil
	}

	r, sig, err := in.evalExpr(n.Right)
	if err != nil || sig != SigNone {
		return value.Null{}, sig, err
	}

	a, b := l.AsNumber(), r.AsNumber()
	switch n.Op {
	case ast.BinAdd:
		return value.Number(a + b), SigNone, nil
	case ast.BinSub:
		return value.Number(a - b), SigNone, nil
	case ast.BinMul:
		return value.Number(a * b), SigNone, nil
	case ast.BinDiv:
		if b == 0 {
			return value.Number(0), SigNone, nil
		}
		return value.Number(a / b), SigNone, nil
	case ast.BinEq:
		return boolNumber(a == b), SigNone, nil
	case ast.BinNe:
		return boolNumber(a != b), SigNone, nil
	case ast.BinLt:
		return boolNumber(a < b), SigNone, nil
	case ast.BinLe:
		return boolNumber(a <= b), SigNone, nil
	case ast.BinGt:
		return boolNumber(a > b), SigNone, nil
	case ast.BinGe:
		return boolNumber(a >= b), SigNone, nil
	default:
		return value.Null{}, SigNone, fmt.Errorf("interp: unknown binary operator %q", n.Op)
	}
}

func boolNumber(b bool) value.Value {
	if b {
		return value.Number(1)
	}
	return value.Number(0)
}
