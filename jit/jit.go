/*
File    : molcore/jit/jit.go
Package : jit
*/

// Package jit is the JIT backend (spec.md §4.6): the reference execution
// path for pure expressions and whole programs, differentially tested
// against package interp. Rather than emitting native machine code (no
// assembler/codegen library appears anywhere in the example pack), it
// compiles an ir.Program/ir.Expr once into a tree of closures over a
// fixed (ctx) signature — a compiled "module" in the spec's sense,
// with an identity, a cache, and concurrent-compile de-duplication, just
// built from Go closures instead of CLIF/assembly. See DESIGN.md's
// "JIT-as-closures" section.
package jit

import (
	"sync"

	"github.com/akashmaji946/molcore/ir"
	"github.com/akashmaji946/molcore/runtime"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const maxLoopIterations = 1024

// numFunc is a compiled numeric closure: the generated code for one
// expression, executed against a live Context.
type numFunc func(ctx *runtime.Context) (float64, error)

// sigFunc is a compiled statement closure. It returns the control signal
// produced by executing the statement, mirroring package interp's Signal
// so the two backends can be asserted identical in tests.
type sigFunc func(ctx *runtime.Context) (signal, float64, error)

type signal int

const (
	sigNone signal = iota
	sigBreak
	sigContinue
	sigReturn
)

// CompiledExpression is a pure numeric expression compiled once and
// executed many times against different contexts (the JIT-cache fast
// path, spec.md §4.4).
type CompiledExpression struct {
	ID     uuid.UUID
	Source string
	fn     numFunc
}

// Run executes the compiled expression against ctx.
func (c *CompiledExpression) Run(ctx *runtime.Context) (float64, error) {
	return c.fn(ctx)
}

// CompiledProgram is a whole program compiled once: an ordered list of
// compiled statement closures plus the program-result rule from §4.6.
type CompiledProgram struct {
	ID     uuid.UUID
	Source string
	body   []sigFunc
}

// Run executes the compiled program against ctx, returning the f64 of
// the last Return, or of the last expression statement, or 0.0.
func (c *CompiledProgram) Run(ctx *runtime.Context) (float64, error) {
	last := 0.0
	for _, stmt := range c.body {
		sig, v, err := stmt(ctx)
		if err != nil {
			return 0, err
		}
		switch sig {
		case sigReturn:
			return v, nil
		case sigBreak, sigContinue:
			return v, runtime.ErrControlFlow("break/continue used outside any loop")
		}
		last = v
	}
	return last, nil
}

// CompileExpression lowers and compiles a pure ir.Expr into a
// CompiledExpression identified by id.
func CompileExpression(id uuid.UUID, source string, e ir.Expr) (*CompiledExpression, error) {
	c := &compiler{}
	fn, err := c.compileNum(e)
	if err != nil {
		return nil, err
	}
	return &CompiledExpression{ID: id, Source: source, fn: fn}, nil
}

// CompileProgram lowers and compiles a whole ir.Program into a
// CompiledProgram, resolving every break/continue against its enclosing
// loop at compile time (spec.md §4.6: "outside any loop is a compile-time
// error", unlike the interpreter's runtime check).
func CompileProgram(id uuid.UUID, source string, prog *ir.Program) (*CompiledProgram, error) {
	c := &compiler{}
	body, err := c.compileStatements(prog.Statements)
	if err != nil {
		return nil, err
	}
	return &CompiledProgram{ID: id, Source: source, body: body}, nil
}

// Cache memoizes compiled modules by exact source text (spec.md §4.4:
// "byte-identical" keys). Lookup is hashed via xxh3 for speed, then
// verified against the stored source to rule out hash collisions; a
// singleflight.Group de-dupes concurrent compiles of the same source so
// only one goroutine ever pays the compile cost.
type Cache struct {
	mu    sync.RWMutex
	exprs map[uint64][]*CompiledExpression
	progs map[uint64][]*CompiledProgram
	group singleflight.Group
}

// NewCache builds an empty Cache.
func NewCache() *Cache {
	return &Cache{
		exprs: make(map[uint64][]*CompiledExpression),
		progs: make(map[uint64][]*CompiledProgram),
	}
}

// GetOrCompileExpression returns the cached CompiledExpression for source
// if present, compiling and inserting it otherwise. Concurrent callers
// for the same source share one compilation.
func (c *Cache) GetOrCompileExpression(source string, e ir.Expr) (*CompiledExpression, error) {
	if hit := c.lookupExpr(source); hit != nil {
		return hit, nil
	}
	v, err, _ := c.group.Do("expr:"+source, func() (any, error) {
		if hit := c.lookupExpr(source); hit != nil {
			return hit, nil
		}
		compiled, err := CompileExpression(uuid.New(), source, e)
		if err != nil {
			return nil, err
		}
		c.insertExpr(source, compiled)
		return compiled, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*CompiledExpression), nil
}

// GetOrCompileProgram is GetOrCompileExpression's whole-program sibling.
func (c *Cache) GetOrCompileProgram(source string, prog *ir.Program) (*CompiledProgram, error) {
	if hit := c.lookupProg(source); hit != nil {
		return hit, nil
	}
	v, err, _ := c.group.Do("prog:"+source, func() (any, error) {
		if hit := c.lookupProg(source); hit != nil {
			return hit, nil
		}
		compiled, err := CompileProgram(uuid.New(), source, prog)
		if err != nil {
			return nil, err
		}
		c.insertProg(source, compiled)
		return compiled, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*CompiledProgram), nil
}

func (c *Cache) lookupExpr(source string) *CompiledExpression {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, ce := range c.exprs[hashSource(source)] {
		if ce.Source == source {
			return ce
		}
	}
	return nil
}

func (c *Cache) insertExpr(source string, ce *CompiledExpression) {
	c.mu.Lock()
	defer c.mu.Unlock()
	h := hashSource(source)
	c.exprs[h] = append(c.exprs[h], ce)
}

func (c *Cache) lookupProg(source string) *CompiledProgram {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, cp := range c.progs[hashSource(source)] {
		if cp.Source == source {
			return cp
		}
	}
	return nil
}

func (c *Cache) insertProg(source string, cp *CompiledProgram) {
	c.mu.Lock()
	defer c.mu.Unlock()
	h := hashSource(source)
	c.progs[h] = append(c.progs[h], cp)
}

// boolNumber matches interp's truth encoding so differential tests agree.
func boolNumber(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
