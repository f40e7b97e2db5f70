package jit_test

import (
	"testing"

	"github.com/akashmaji946/molcore/ir"
	"github.com/akashmaji946/molcore/jit"
	"github.com/akashmaji946/molcore/parser"
	"github.com/akashmaji946/molcore/runtime"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lowerExpr(t *testing.T, src string) ir.Expr {
	t.Helper()
	astProg, err := parser.ParseProgram(src)
	require.NoError(t, err)
	e, err := ir.LowerExpression(astProg)
	require.NoError(t, err)
	return e
}

func lowerProg(t *testing.T, src string) *ir.Program {
	t.Helper()
	astProg, err := parser.ParseProgram(src)
	require.NoError(t, err)
	prog, err := ir.LowerProgram(astProg)
	require.NoError(t, err)
	return prog
}

func TestCompiledExpressionRuns(t *testing.T) {
	e := lowerExpr(t, "return 2 + 2;")
	compiled, err := jit.CompileExpression(uuid.New(), "return 2 + 2;", e)
	require.NoError(t, err)
	got, err := compiled.Run(runtime.New())
	require.NoError(t, err)
	assert.Equal(t, 4.0, got)
}

func TestCacheReturnsSameCompiledExpressionForIdenticalSource(t *testing.T) {
	cache := jit.NewCache()
	src := "return 1 + 1;"
	e := lowerExpr(t, src)

	first, err := cache.GetOrCompileExpression(src, e)
	require.NoError(t, err)
	second, err := cache.GetOrCompileExpression(src, e)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "identical source must hit the cache, not recompile")
}

func TestCacheDistinguishesDifferentSource(t *testing.T) {
	cache := jit.NewCache()
	srcA, srcB := "return 1 + 1;", "return 1 + 2;"

	a, err := cache.GetOrCompileExpression(srcA, lowerExpr(t, srcA))
	require.NoError(t, err)
	b, err := cache.GetOrCompileExpression(srcB, lowerExpr(t, srcB))
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestCompiledProgramRunsLoopsAndBreaks(t *testing.T) {
	prog := lowerProg(t, "temp.n = 0; loop(100, { temp.n = temp.n + 1; temp.n >= 3 ? break; }) return temp.n;")
	compiled, err := jit.CompileProgram(uuid.New(), "loop-break", prog)
	require.NoError(t, err)
	got, err := compiled.Run(runtime.New())
	require.NoError(t, err)
	assert.Equal(t, 3.0, got)
}

func TestCompileProgramRejectsBreakOutsideLoop(t *testing.T) {
	prog := lowerProg(t, "1 < 2 ? break; return 0;")
	_, err := jit.CompileProgram(uuid.New(), "bad", prog)
	require.Error(t, err)
}

func TestCompiledProgramForEachSumsElements(t *testing.T) {
	prog := lowerProg(t, "temp.total = 0; for_each(temp.x, [1, 2, 3], { temp.total = temp.total + temp.x; }) return temp.total;")
	compiled, err := jit.CompileProgram(uuid.New(), "foreach-sum", prog)
	require.NoError(t, err)
	got, err := compiled.Run(runtime.New())
	require.NoError(t, err)
	assert.Equal(t, 6.0, got)
}
