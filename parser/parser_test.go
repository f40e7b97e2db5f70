/*
File    : molcore/parser/parser_test.go
Package : parser
*/
package parser

import (
	"testing"

	"github.com/akashmaji946/molcore/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	p, err := New(src)
	require.NoError(t, err)
	x, err := p.parseExpression()
	require.NoError(t, err)
	return x
}

func TestPrecedenceCascade(t *testing.T) {
	// * binds tighter than +, so "1 + 2 * 3" is 1 + (2 * 3).
	x := parseExpr(t, "1 + 2 * 3")
	add, ok := x.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.BinAdd, add.Op)
	mul, ok := add.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.BinMul, mul.Op)
}

func TestComparisonBindsLooserThanAdditive(t *testing.T) {
	x := parseExpr(t, "1 + 2 < 3 * 4")
	cmp, ok := x.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.BinLt, cmp.Op)
	_, ok = cmp.Left.(*ast.BinaryExpr)
	assert.True(t, ok, "left of < should be the additive expr 1 + 2")
	_, ok = cmp.Right.(*ast.BinaryExpr)
	assert.True(t, ok, "right of < should be the multiplicative expr 3 * 4")
}

func TestLogicalAndBindsTighterThanOr(t *testing.T) {
	x := parseExpr(t, "a || b && c")
	or, ok := x.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.BinOr, or.Op)
	and, ok := or.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.BinAnd, and.Op)
}

func TestTernaryBindsLooserThanLogical(t *testing.T) {
	x := parseExpr(t, "a && b ? 1 : 2")
	tern, ok := x.(*ast.TernaryExpr)
	require.True(t, ok)
	_, ok = tern.Cond.(*ast.BinaryExpr)
	assert.True(t, ok, "condition should be the full a && b expression")
}

func TestNullCoalesceBindsLoosestAndIsLeftAssociative(t *testing.T) {
	x := parseExpr(t, "a ?? b ?? c")
	outer, ok := x.(*ast.NullCoalesceExpr)
	require.True(t, ok)
	inner, ok := outer.Left.(*ast.NullCoalesceExpr)
	require.True(t, ok, "?? should be left-associative: (a ?? b) ?? c")
	assertPath(t, inner.Left, "a")
	assertPath(t, inner.Right, "b")
	assertPath(t, outer.Right, "c")
}

func TestUnaryIsRightAssociativeAndBindsTighterThanMultiplicative(t *testing.T) {
	x := parseExpr(t, "-2 * 3")
	mul, ok := x.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.BinMul, mul.Op)
	neg, ok := mul.Left.(*ast.UnaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.UnaryNeg, neg.Op)
}

func TestDoubleUnaryNests(t *testing.T) {
	x := parseExpr(t, "!!a")
	outer, ok := x.(*ast.UnaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.UnaryNot, outer.Op)
	inner, ok := outer.X.(*ast.UnaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.UnaryNot, inner.Op)
}

func TestParenthesesOverridePrecedence(t *testing.T) {
	x := parseExpr(t, "(1 + 2) * 3")
	mul, ok := x.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.BinMul, mul.Op)
	add, ok := mul.Left.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.BinAdd, add.Op)
}

func assertPath(t *testing.T, x ast.Expr, want string) {
	t.Helper()
	p, ok := x.(*ast.PathExpr)
	require.True(t, ok)
	assert.Equal(t, want, p.Name.String())
}

func TestQualifiedPathAndIndex(t *testing.T) {
	x := parseExpr(t, "temp.location.z[2]")
	p, ok := x.(*ast.PathExpr)
	require.True(t, ok)
	assert.Equal(t, "temp.location.z", p.Name.String())
	require.NotNil(t, p.Index)
	num, ok := p.Index.(*ast.NumberLit)
	require.True(t, ok)
	assert.Equal(t, 2.0, num.Value)
}

func TestLengthOfQuery(t *testing.T) {
	x := parseExpr(t, "temp.items.length")
	lo, ok := x.(*ast.LengthOfExpr)
	require.True(t, ok)
	assert.Equal(t, "temp.items", lo.Path.String())
}

func TestBuiltinCallParsesArgs(t *testing.T) {
	x := parseExpr(t, "math.clamp(1, 0, 10)")
	call, ok := x.(*ast.CallExpr)
	require.True(t, ok)
	assert.Equal(t, "math.clamp", call.Builtin)
	require.Len(t, call.Args, 3)
}

func TestArrayAndStructLiterals(t *testing.T) {
	arr := parseExpr(t, "[1, 2, 3]")
	a, ok := arr.(*ast.ArrayLit)
	require.True(t, ok)
	assert.Len(t, a.Elements, 3)

	st := parseExpr(t, "{ x: 1, y: 2 }")
	s, ok := st.(*ast.StructLit)
	require.True(t, ok)
	require.Len(t, s.Fields, 2)
	assert.Equal(t, "x", s.Fields[0].Name)
	assert.Equal(t, "y", s.Fields[1].Name)
}

func TestTernaryWithBareBreakHasNilElse(t *testing.T) {
	prog, err := ParseProgram("loop(5, temp.i >= 3 ? break);")
	require.NoError(t, err)
	require.Len(t, prog.Statements, 1)
	loop, ok := prog.Statements[0].(*ast.Loop)
	require.True(t, ok)
	require.Len(t, loop.Body.Statements, 1)
	exprStmt, ok := loop.Body.Statements[0].(*ast.ExprStatement)
	require.True(t, ok)
	tern, ok := exprStmt.X.(*ast.TernaryExpr)
	require.True(t, ok)
	_, isFlow := tern.Then.(*ast.FlowExpr)
	assert.True(t, isFlow)
	assert.Nil(t, tern.Else)
}

func TestTernaryWithElseArm(t *testing.T) {
	x := parseExpr(t, "a ? 1 : 2")
	tern, ok := x.(*ast.TernaryExpr)
	require.True(t, ok)
	require.NotNil(t, tern.Else)
}

func TestAssignmentStatement(t *testing.T) {
	prog, err := ParseProgram("temp.x = 5;")
	require.NoError(t, err)
	require.Len(t, prog.Statements, 1)
	assign, ok := prog.Statements[0].(*ast.Assignment)
	require.True(t, ok)
	assert.Equal(t, "temp.x", assign.Target.String())
	assert.Nil(t, assign.Index)
}

func TestIndexedAssignmentStatement(t *testing.T) {
	prog, err := ParseProgram("temp.arr[1] = 9;")
	require.NoError(t, err)
	assign, ok := prog.Statements[0].(*ast.Assignment)
	require.True(t, ok)
	require.NotNil(t, assign.Index)
	num, ok := assign.Index.(*ast.NumberLit)
	require.True(t, ok)
	assert.Equal(t, 1.0, num.Value)
}

func TestLoopStatementGrammar(t *testing.T) {
	prog, err := ParseProgram("loop(3, { temp.n = temp.n + 1; });")
	require.NoError(t, err)
	loop, ok := prog.Statements[0].(*ast.Loop)
	require.True(t, ok)
	num, ok := loop.Count.(*ast.NumberLit)
	require.True(t, ok)
	assert.Equal(t, 3.0, num.Value)
	assert.Len(t, loop.Body.Statements, 1)
}

func TestForEachStatementGrammar(t *testing.T) {
	prog, err := ParseProgram("for_each(temp.x, [1, 2, 3], { temp.x; });")
	require.NoError(t, err)
	fe, ok := prog.Statements[0].(*ast.ForEach)
	require.True(t, ok)
	assert.Equal(t, "temp.x", fe.Var.String())
	coll, ok := fe.Collection.(*ast.ArrayLit)
	require.True(t, ok)
	assert.Len(t, coll.Elements, 3)
}

func TestReturnStatementRequiresExpression(t *testing.T) {
	_, err := ParseProgram("return;")
	require.Error(t, err)
}

func TestReturnStatement(t *testing.T) {
	prog, err := ParseProgram("return 1 + 2;")
	require.NoError(t, err)
	ret, ok := prog.Statements[0].(*ast.Return)
	require.True(t, ok)
	_, ok = ret.X.(*ast.BinaryExpr)
	assert.True(t, ok)
}

func TestMultipleStatementsSeparatedBySemicolons(t *testing.T) {
	prog, err := ParseProgram("temp.a = 1; temp.b = 2; return temp.a + temp.b;")
	require.NoError(t, err)
	assert.Len(t, prog.Statements, 3)
}

func TestUnterminatedBlockIsAParseError(t *testing.T) {
	_, err := ParseProgram("loop(3, { temp.n = 1;")
	require.Error(t, err)
}

func TestParseErrorCarriesLineAndColumn(t *testing.T) {
	_, err := ParseProgram("temp.x = ;")
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Line)
}

func TestParseAggregatesMultipleErrorsAcrossStatements(t *testing.T) {
	p, err := New("temp.a = ; temp.b = ; return temp.a;")
	require.NoError(t, err)
	_, err = p.Parse()
	require.Error(t, err)
	assert.GreaterOrEqual(t, len(p.Errors()), 2,
		"a bad statement should not swallow errors from the ones after it")
}

func TestParseRecoversEnoughToParseStatementsAfterAnError(t *testing.T) {
	p, err := New("temp.a = ; return 42;")
	require.NoError(t, err)
	prog, err := p.Parse()
	require.Error(t, err)
	require.Len(t, prog.Statements, 1, "the valid return statement after the bad one should still be parsed")
	ret, ok := prog.Statements[0].(*ast.Return)
	require.True(t, ok)
	num, ok := ret.X.(*ast.NumberLit)
	require.True(t, ok)
	assert.Equal(t, 42.0, num.Value)
}

func TestLexErrorPropagatesFromParse(t *testing.T) {
	_, err := ParseProgram(`temp.x = "unterminated`)
	require.Error(t, err)
}

func TestCaseInsensitiveKeywords(t *testing.T) {
	prog, err := ParseProgram("LOOP(1, { RETURN 1; });")
	require.NoError(t, err)
	_, ok := prog.Statements[0].(*ast.Loop)
	assert.True(t, ok)
}
