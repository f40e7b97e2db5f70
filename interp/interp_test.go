package interp_test

import (
	"testing"

	"github.com/akashmaji946/molcore/interp"
	"github.com/akashmaji946/molcore/ir"
	"github.com/akashmaji946/molcore/parser"
	"github.com/akashmaji946/molcore/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, src string, opts ...runtime.Option) (float64, *runtime.Context) {
	t.Helper()
	astProg, err := parser.ParseProgram(src)
	require.NoError(t, err)
	prog, err := ir.LowerProgram(astProg)
	require.NoError(t, err)
	ctx := runtime.New(opts...)
	got, err := interp.New(ctx).Run(prog)
	require.NoError(t, err)
	return got, ctx
}

func TestArithmeticAndPrecedence(t *testing.T) {
	got, _ := run(t, "return 2 + 3 * 4;")
	assert.Equal(t, 14.0, got)
}

func TestTernaryEvaluatesOnlyChosenArm(t *testing.T) {
	got, _ := run(t, "return 1 < 2 ? 10 : 20;")
	assert.Equal(t, 10.0, got)

	got, _ = run(t, "return 1 > 2 ? 10 : 20;")
	assert.Equal(t, 20.0, got)
}

func TestNullCoalesce(t *testing.T) {
	got, _ := run(t, "return temp.missing ?? 7;")
	assert.Equal(t, 7.0, got)
}

func TestAssignmentPersistsInContext(t *testing.T) {
	_, ctx := run(t, "temp.x = 5; temp.y = temp.x * 2; return temp.y;")
	p, err := runtime.ParsePathString("temp.y")
	require.NoError(t, err)
	assert.Equal(t, 10.0, ctx.Get(p).AsNumber())
}

func TestLoopAccumulates(t *testing.T) {
	got, _ := run(t, "temp.sum = 0; loop(5, { temp.sum = temp.sum + 1; }) return temp.sum;")
	assert.Equal(t, 5.0, got)
}

func TestLoopCountIsClampedAt1024(t *testing.T) {
	got, _ := run(t, "temp.n = 0; loop(5000, { temp.n = temp.n + 1; }) return temp.n;")
	assert.Equal(t, 1024.0, got)
}

func TestBreakExitsLoopEarly(t *testing.T) {
	got, _ := run(t, "temp.i = 0; loop(10, { temp.i = temp.i + 1; temp.i > 2 ? break; }) return temp.i;")
	assert.Equal(t, 3.0, got)
}

func TestContinueSkipsRestOfBody(t *testing.T) {
	got, _ := run(t, `
		temp.sum = 0;
		temp.i = 0;
		loop(5, {
			temp.i = temp.i + 1;
			temp.i == 3 ? continue;
			temp.sum = temp.sum + temp.i;
		})
		return temp.sum;
	`)
	assert.Equal(t, 12.0, got) // 1 + 2 + 4 + 5, 3 skipped
}

func TestBreakOutsideLoopIsRuntimeError(t *testing.T) {
	astProg, err := parser.ParseProgram("1 < 2 ? break; return 0;")
	require.NoError(t, err)
	prog, err := ir.LowerProgram(astProg)
	require.NoError(t, err)
	_, err = interp.New(runtime.New()).Run(prog)
	require.Error(t, err)
	var rerr *runtime.RuntimeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, runtime.KindControlFlow, rerr.Kind)
}

func TestForEachIteratesArrayElements(t *testing.T) {
	got, _ := run(t, `
		temp.total = 0;
		for_each(temp.item, [1, 2, 3], {
			temp.total = temp.total + temp.item;
		})
		return temp.total;
	`)
	assert.Equal(t, 6.0, got)
}

func TestForEachOverNonArrayRunsZeroTimes(t *testing.T) {
	got, _ := run(t, "temp.total = 0; for_each(temp.item, 5, { temp.total = 1; }) return temp.total;")
	assert.Equal(t, 0.0, got)
}

func TestBuiltinCallDispatchesThroughRegistry(t *testing.T) {
	got, _ := run(t, "return math.sqrt(16);")
	assert.Equal(t, 4.0, got)
}

func TestArrayIndexClampAndWrap(t *testing.T) {
	got, _ := run(t, "temp.a = [10, 20, 30]; return temp.a[-5];")
	assert.Equal(t, 10.0, got)

	got, _ = run(t, "temp.a = [10, 20, 30]; return temp.a[5];")
	assert.Equal(t, 30.0, got) // 5 % 3 == 2 -> third element
}

func TestLengthOfArrayAndNonArray(t *testing.T) {
	got, _ := run(t, "temp.a = [1, 2, 3]; return temp.a.length;")
	assert.Equal(t, 3.0, got)

	got, _ = run(t, "temp.x = 5; return temp.x.length;")
	assert.Equal(t, 0.0, got)
}

func TestReturnShortCircuitsRemainingStatements(t *testing.T) {
	got, _ := run(t, "return 42; temp.never = 1;")
	assert.Equal(t, 42.0, got)
}

func TestQueryValuesAreReadableFromScripts(t *testing.T) {
	got, _ := run(t, "return query.health;", runtime.WithQuery("health", 80))
	assert.Equal(t, 80.0, got)
}
