/*
File    : molcore/lexer/lexer_test.go
Package : lexer
*/
package lexer

import (
	"testing"

	"github.com/akashmaji946/molcore/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tok builds an expected token for comparison with line/column left at
// zero -- tests compare Type and Literal only (see stripPos).
func tok(typ token.Type, lit string) token.Token {
	return token.Token{Type: typ, Literal: lit}
}

// stripPos drops line/column so a scanned stream can be compared against
// tok()-built expectations without hardcoding positions in every case.
func stripPos(toks []token.Token) []token.Token {
	out := make([]token.Token, len(toks))
	for i, t := range toks {
		out[i] = token.Token{Type: t.Type, Literal: t.Literal}
	}
	return out
}

type lexCase struct {
	name string
	src  string
	want []token.Token
}

func TestAllTokenizesOperatorsAndStructure(t *testing.T) {
	cases := []lexCase{
		{
			name: "arithmetic",
			src:  "1 + 2 - 3 * 4 / 5",
			want: []token.Token{
				tok(token.NUMBER, "1"), tok(token.PLUS, "+"),
				tok(token.NUMBER, "2"), tok(token.MINUS, "-"),
				tok(token.NUMBER, "3"), tok(token.STAR, "*"),
				tok(token.NUMBER, "4"), tok(token.SLASH, "/"),
				tok(token.NUMBER, "5"),
			},
		},
		{
			name: "comparisons and equality",
			src:  "a == b != c <= d >= e < f > g",
			want: []token.Token{
				tok(token.IDENT, "a"), tok(token.EQ, "=="),
				tok(token.IDENT, "b"), tok(token.NE, "!="),
				tok(token.IDENT, "c"), tok(token.LE, "<="),
				tok(token.IDENT, "d"), tok(token.GE, ">="),
				tok(token.IDENT, "e"), tok(token.LT, "<"),
				tok(token.IDENT, "f"), tok(token.GT, ">"),
				tok(token.IDENT, "g"),
			},
		},
		{
			name: "logical and ternary/null-coalesce",
			src:  "a && b || !c ? d ?? e : f",
			want: []token.Token{
				tok(token.IDENT, "a"), tok(token.AND, "&&"),
				tok(token.IDENT, "b"), tok(token.OR, "||"),
				tok(token.NOT, "!"), tok(token.IDENT, "c"),
				tok(token.QUESTION, "?"), tok(token.IDENT, "d"),
				tok(token.NULLCO, "??"), tok(token.IDENT, "e"),
				tok(token.COLON, ":"), tok(token.IDENT, "f"),
			},
		},
		{
			name: "structural punctuation and qualified path",
			src:  "temp.x[0] = {1, 2}; loop(3, temp.x)",
			want: []token.Token{
				tok(token.IDENT, "temp"), tok(token.DOT, "."), tok(token.IDENT, "x"),
				tok(token.LBRACKET, "["), tok(token.NUMBER, "0"), tok(token.RBRACKET, "]"),
				tok(token.ASSIGN, "="), tok(token.LBRACE, "{"),
				tok(token.NUMBER, "1"), tok(token.COMMA, ","), tok(token.NUMBER, "2"),
				tok(token.RBRACE, "}"), tok(token.SEMI, ";"),
				tok(token.IDENT, "loop"), tok(token.LPAREN, "("), tok(token.NUMBER, "3"),
				tok(token.COMMA, ","), tok(token.IDENT, "temp"), tok(token.DOT, "."),
				tok(token.IDENT, "x"), tok(token.RPAREN, ")"),
			},
		},
		{
			name: "keywords lex as identifiers",
			src:  "break continue return null for_each",
			want: []token.Token{
				tok(token.IDENT, "break"), tok(token.IDENT, "continue"),
				tok(token.IDENT, "return"), tok(token.IDENT, "null"),
				tok(token.IDENT, "for_each"),
			},
		},
		{
			name: "comments and whitespace are trivia",
			src:  "1 # a trailing comment\n  + 2",
			want: []token.Token{
				tok(token.NUMBER, "1"), tok(token.PLUS, "+"), tok(token.NUMBER, "2"),
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := New(c.src).All()
			require.NoError(t, err)
			assert.Equal(t, c.want, stripPos(toks))
		})
	}
}

func TestNumericLiteralForms(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"42", "42"},
		{"3.14", "3.14"},
		{"1e10", "1e10"},
		{"2.5e-3", "2.5e-3"},
		{"1e+2", "1e+2"},
	}
	for _, c := range cases {
		toks, err := New(c.src).All()
		require.NoError(t, err)
		require.Len(t, toks, 1)
		assert.Equal(t, token.NUMBER, toks[0].Type)
		assert.Equal(t, c.want, toks[0].Literal)
	}
}

func TestTrailingEWithNoDigitsIsNotConsumedAsExponent(t *testing.T) {
	toks, err := New("2e + 1").All()
	require.NoError(t, err)
	require.Len(t, toks, 4)
	assert.Equal(t, token.NUMBER, toks[0].Type)
	assert.Equal(t, "2", toks[0].Literal)
	assert.Equal(t, token.IDENT, toks[1].Type)
	assert.Equal(t, "e", toks[1].Literal)
	assert.Equal(t, token.PLUS, toks[2].Type)
	assert.Equal(t, token.NUMBER, toks[3].Type)
	assert.Equal(t, "1", toks[3].Literal)
}

func TestStringEscapes(t *testing.T) {
	toks, err := New(`"a\nb\tc\\d\"e"`).All()
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, "a\nb\tc\\d\"e", toks[0].Literal)
}

func TestSingleAndDoubleQuotedStrings(t *testing.T) {
	toks, err := New(`'single' "double"`).All()
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, "single", toks[0].Literal)
	assert.Equal(t, "double", toks[1].Literal)
}

func TestUnterminatedStringIsALexError(t *testing.T) {
	_, err := New(`"never closed`).All()
	require.Error(t, err)
	var lexErr *Error
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, "unterminated string literal", lexErr.Kind)
}

func TestInvalidEscapeIsALexError(t *testing.T) {
	_, err := New(`"bad \q escape"`).All()
	require.Error(t, err)
	var lexErr *Error
	require.ErrorAs(t, err, &lexErr)
	assert.Contains(t, lexErr.Kind, "invalid escape")
}

func TestUnknownCharacterIsALexError(t *testing.T) {
	_, err := New("temp.x $ 1").All()
	require.Error(t, err)
	var lexErr *Error
	require.ErrorAs(t, err, &lexErr)
	assert.Contains(t, lexErr.Kind, "unknown character")
}

func TestLoneAmpersandAndPipeAreLexErrors(t *testing.T) {
	_, err := New("a & b").All()
	require.Error(t, err)

	_, err = New("a | b").All()
	require.Error(t, err)
}

func TestLineAndColumnTracking(t *testing.T) {
	toks, err := New("1\n  22").All()
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 1, toks[0].Column)
	assert.Equal(t, 2, toks[1].Line)
	assert.Equal(t, 3, toks[1].Column)
}

func TestEmptySourceIsImmediateEOF(t *testing.T) {
	l := New("")
	got, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, token.EOF, got.Type)
}
