/*
File    : molcore/molcore.go
Package : molcore
*/

// Package molcore is the Host API entry point (spec.md §6): parse source,
// lower it, and execute it against a caller-owned runtime.Context. The
// dispatcher logic (try the pure-expression JIT-cache fast path, else
// lower the whole program and compile-on-demand) follows spec.md §4.4.
package molcore

import (
	"github.com/akashmaji946/molcore/internal/rtlog"
	"github.com/akashmaji946/molcore/interp"
	"github.com/akashmaji946/molcore/ir"
	"github.com/akashmaji946/molcore/jit"
	"github.com/akashmaji946/molcore/parser"
	"github.com/akashmaji946/molcore/runtime"
)

func runInterp(prog *ir.Program, ctx *runtime.Context) (float64, error) {
	return interp.New(ctx).Run(prog)
}

// Engine selects which backend executes a lowered program once the
// JIT-cache fast path does not apply. The JIT is the reference path
// (spec.md §4.6); the interpreter exists as a fallback and as the
// semantic oracle differential tests compare it against.
type Engine string

const (
	EngineJIT    Engine = "jit"
	EngineInterp Engine = "interp"
)

// Evaluator owns one JIT cache (spec.md §4.4's "thread-local cache": one
// Evaluator is meant for use from a single goroutine at a time, mirroring
// RuntimeContext's own single-owner rule).
type Evaluator struct {
	cache  *jit.Cache
	engine Engine
	logger rtlog.Logger
}

// Option configures an Evaluator at construction time.
type Option func(*Evaluator)

// WithEngine overrides the default JIT backend, e.g. for tests that want
// to force interpretation.
func WithEngine(e Engine) Option {
	return func(ev *Evaluator) { ev.engine = e }
}

// WithLogger attaches a logger for trace-level dispatch events.
func WithLogger(l rtlog.Logger) Option {
	return func(ev *Evaluator) { ev.logger = l }
}

// New builds an Evaluator with an empty JIT cache.
func New(opts ...Option) *Evaluator {
	ev := &Evaluator{cache: jit.NewCache(), engine: EngineJIT}
	for _, opt := range opts {
		opt(ev)
	}
	return ev
}

// Evaluate parses, lowers, and executes source against ctx, returning its
// numeric result (spec.md §4.4/§6).
func (ev *Evaluator) Evaluate(source string, ctx *runtime.Context) (float64, error) {
	ev.logger.Debug("evaluate start", "len", len(source))

	astProg, err := parser.ParseProgram(source)
	if err != nil {
		ev.logger.Error("parse failed", "err", err)
		return 0, err
	}

	if ev.engine != EngineInterp {
		if expr, err := ir.LowerExpression(astProg); err == nil {
			ev.logger.Debug("jit cache lookup", "pure", true)
			compiled, err := ev.cache.GetOrCompileExpression(source, expr)
			if err != nil {
				return 0, err
			}
			return compiled.Run(ctx)
		}
	}

	prog, err := ir.LowerProgram(astProg)
	if err != nil {
		return 0, err
	}

	if ev.engine == EngineInterp {
		return runInterp(prog, ctx)
	}

	compiled, err := ev.cache.GetOrCompileProgram(source, prog)
	if err != nil {
		return 0, err
	}
	return compiled.Run(ctx)
}

// Evaluate is a package-level convenience for one-off evaluations; callers
// that evaluate many sources should build an Evaluator to reuse its cache.
func Evaluate(source string, ctx *runtime.Context) (float64, error) {
	return New().Evaluate(source, ctx)
}
