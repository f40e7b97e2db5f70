/*
File    : molcore/parser/parser.go
Package : parser
*/

// Package parser implements a recursive-descent, Pratt-style parser
// (spec.md §4.2) that turns a lexer.Lexer's token stream into an ast.Program.
// The two-token lookahead (Curr/Next), the advance/expectAdvance helpers,
// and the "collect errors, don't panic" style follow go-mix's parser.go.
package parser

import (
	"fmt"

	"github.com/akashmaji946/molcore/ast"
	"github.com/akashmaji946/molcore/lexer"
	"github.com/akashmaji946/molcore/token"
)

// Error is a single grammar violation (spec.md §7 ParseError): what token
// type was expected, what was actually found, and where.
type Error struct {
	Line, Column int
	Expected     string
	Found        token.Token
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error at %d:%d: expected %s, found %s",
		e.Line, e.Column, e.Expected, e.Found)
}

// Parser holds all state needed to turn a token stream into an ast.Program.
type Parser struct {
	lex  *lexer.Lexer
	curr token.Token
	next token.Token

	errs []error
}

// New creates a Parser over src and primes its two-token lookahead.
func New(src string) (*Parser, error) {
	p := &Parser{lex: lexer.New(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) advance() error {
	p.curr = p.next
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.next = tok
	return nil
}

// currIsKeyword reports whether curr is the identifier spelling of keyword kw,
// case-insensitively (spec.md §4.1: all identifier comparisons downstream
// are case-insensitive).
func (p *Parser) currIsKeyword(kw token.Type) bool {
	if p.curr.Type != token.IDENT {
		return false
	}
	t, ok := token.Lookup(lowerASCII(p.curr.Literal))
	return ok && t == kw
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func (p *Parser) expect(t token.Type) bool {
	if p.curr.Type != t {
		p.errs = append(p.errs, &Error{p.curr.Line, p.curr.Column, string(t), p.curr})
		return false
	}
	return true
}

func (p *Parser) expectAdvance(t token.Type) error {
	if !p.expect(t) {
		return p.errs[len(p.errs)-1]
	}
	return p.advance()
}

func (p *Parser) addErrorf(format string, args ...any) {
	p.errs = append(p.errs, fmt.Errorf("parse error at %d:%d: "+format,
		append([]any{p.curr.Line, p.curr.Column}, args...)...))
}

// Errors returns every parse error collected during Parse, not just the
// first, matching go-mix's error-collection style.
func (p *Parser) Errors() []error { return p.errs }

// Parse consumes the full token stream and returns the resulting Program.
// On a statement error, it records the error and resynchronizes to the next
// statement boundary instead of aborting, so a single bad statement doesn't
// hide every error after it — matching go-mix's Parse loop, which advances
// past a bad statement and keeps going rather than stopping at the first
// error. The first error is returned; the full set is in p.Errors().
func (p *Parser) Parse() (*ast.Program, error) {
	prog := &ast.Program{}
	for p.curr.Type != token.EOF {
		if p.curr.Type == token.SEMI {
			if err := p.advance(); err != nil {
				p.recordError(err)
				break
			}
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			p.recordError(err)
			p.synchronize()
			continue
		}
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		// Optional trailing ';' between statements (spec.md §4.2).
		if p.curr.Type == token.SEMI {
			if err := p.advance(); err != nil {
				p.recordError(err)
				break
			}
		}
	}
	if len(p.errs) > 0 {
		return prog, p.errs[0]
	}
	return prog, nil
}

// recordError appends err to p.errs unless it is already the last entry —
// expect/addErrorf already append grammar errors before returning them, so
// this only adds errors (typically lexer errors bubbled up through advance)
// that haven't been recorded yet.
func (p *Parser) recordError(err error) {
	if len(p.errs) > 0 && p.errs[len(p.errs)-1] == err {
		return
	}
	p.errs = append(p.errs, err)
}

// synchronize discards tokens up to and including the next ';', or up to
// EOF, so Parse can attempt the next statement after a parse error instead
// of giving up on the rest of the source.
func (p *Parser) synchronize() {
	for p.curr.Type != token.SEMI && p.curr.Type != token.EOF {
		if err := p.advance(); err != nil {
			p.recordError(err)
			return
		}
	}
	if p.curr.Type == token.SEMI {
		if err := p.advance(); err != nil {
			p.recordError(err)
		}
	}
}

// ParseProgram is a convenience entry point: lex and parse src in one call.
func ParseProgram(src string) (*ast.Program, error) {
	p, err := New(src)
	if err != nil {
		return nil, err
	}
	return p.Parse()
}
