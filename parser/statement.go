/*
File    : molcore/parser/statement.go
Package : parser
*/
package parser

import (
	"github.com/akashmaji946/molcore/ast"
	"github.com/akashmaji946/molcore/token"
)

// parseStatement dispatches on the current token to the statement-level
// grammar production (spec.md §4.2): loop, for_each, return, or a bare
// expression/assignment.
func (p *Parser) parseStatement() (ast.Statement, error) {
	switch {
	case p.currIsKeyword(token.LOOP):
		return p.parseLoop()
	case p.currIsKeyword(token.FOREACH):
		return p.parseForEach()
	case p.currIsKeyword(token.RETURN):
		return p.parseReturn()
	default:
		return p.parseExprOrAssignment()
	}
}

// parseBlock parses either a brace-delimited `{ stmt; stmt; ... }` or a
// single statement, per the grammar's "block-or-expr" body (spec.md §4.2).
func (p *Parser) parseBlock() (ast.Block, error) {
	if p.curr.Type != token.LBRACE {
		stmt, err := p.parseStatement()
		if err != nil {
			return ast.Block{}, err
		}
		return ast.Block{Statements: []ast.Statement{stmt}}, nil
	}

	if err := p.advance(); err != nil { // consume '{'
		return ast.Block{}, err
	}
	var stmts []ast.Statement
	for p.curr.Type != token.RBRACE {
		if p.curr.Type == token.EOF {
			p.addErrorf("unterminated block, expected '}'")
			return ast.Block{Statements: stmts}, p.errs[len(p.errs)-1]
		}
		if p.curr.Type == token.SEMI {
			if err := p.advance(); err != nil {
				return ast.Block{}, err
			}
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return ast.Block{}, err
		}
		stmts = append(stmts, stmt)
		if p.curr.Type == token.SEMI {
			if err := p.advance(); err != nil {
				return ast.Block{}, err
			}
		}
	}
	if err := p.advance(); err != nil { // consume '}'
		return ast.Block{}, err
	}
	return ast.Block{Statements: stmts}, nil
}

// parseLoop parses `loop(count, block-or-expr)`.
func (p *Parser) parseLoop() (ast.Statement, error) {
	if err := p.advance(); err != nil { // consume 'loop'
		return nil, err
	}
	if err := p.expectAdvance(token.LPAREN); err != nil {
		return nil, err
	}
	count, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectAdvance(token.COMMA); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if err := p.expectAdvance(token.RPAREN); err != nil {
		return nil, err
	}
	return &ast.Loop{Count: count, Body: body}, nil
}

// parseForEach parses `for_each(path, collection, block-or-expr)`.
func (p *Parser) parseForEach() (ast.Statement, error) {
	if err := p.advance(); err != nil { // consume 'for_each'
		return nil, err
	}
	if err := p.expectAdvance(token.LPAREN); err != nil {
		return nil, err
	}
	qn, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	if err := p.expectAdvance(token.COMMA); err != nil {
		return nil, err
	}
	coll, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectAdvance(token.COMMA); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if err := p.expectAdvance(token.RPAREN); err != nil {
		return nil, err
	}
	return &ast.ForEach{Var: qn, Collection: coll, Body: body}, nil
}

// parseReturn parses `return expr` (a bare `return;` is a grammar error,
// per spec.md §4.2 — use `return 0`).
func (p *Parser) parseReturn() (ast.Statement, error) {
	if err := p.advance(); err != nil { // consume 'return'
		return nil, err
	}
	if p.curr.Type == token.SEMI || p.curr.Type == token.EOF {
		p.addErrorf("'return' requires an expression")
		return nil, p.errs[len(p.errs)-1]
	}
	x, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Return{X: x}, nil
}

// parseQualifiedName parses a dotted identifier chain into an
// ast.QualifiedName, e.g. `temp.location.z`.
func (p *Parser) parseQualifiedName() (ast.QualifiedName, error) {
	if !p.expect(token.IDENT) {
		return ast.QualifiedName{}, p.errs[len(p.errs)-1]
	}
	segs := []string{p.curr.Literal}
	if err := p.advance(); err != nil {
		return ast.QualifiedName{}, err
	}
	for p.curr.Type == token.DOT {
		if err := p.advance(); err != nil {
			return ast.QualifiedName{}, err
		}
		if !p.expect(token.IDENT) {
			return ast.QualifiedName{}, p.errs[len(p.errs)-1]
		}
		segs = append(segs, p.curr.Literal)
		if err := p.advance(); err != nil {
			return ast.QualifiedName{}, err
		}
	}
	return ast.NewQualifiedName(segs...), nil
}

// parseExprOrAssignment parses either `path = expr` or a bare expression
// statement, disambiguating by looking ahead for '=' after a dotted path.
func (p *Parser) parseExprOrAssignment() (ast.Statement, error) {
	if p.curr.Type == token.IDENT && p.looksLikeAssignTarget() {
		qn, err := p.parseQualifiedName()
		if err != nil {
			return nil, err
		}
		var idx ast.Expr
		if p.curr.Type == token.LBRACKET {
			if err := p.advance(); err != nil {
				return nil, err
			}
			idx, err = p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err := p.expectAdvance(token.RBRACKET); err != nil {
				return nil, err
			}
		}
		if err := p.expectAdvance(token.ASSIGN); err != nil {
			return nil, err
		}
		val, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.Assignment{Target: qn, Index: idx, Value: val}, nil
	}

	x, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.ExprStatement{X: x}, nil
}

// looksLikeAssignTarget scans ahead (without committing) to decide whether
// the upcoming dotted identifier chain is an assignment target, i.e. is
// followed by '=', or by '['. It restores parser state afterwards from a
// saved copy of the lexer, the lookahead tokens, and the error count.
func (p *Parser) looksLikeAssignTarget() bool {
	save := *p.lex
	saveCurr, saveNext, saveErrs := p.curr, p.next, len(p.errs)

	defer func() {
		*p.lex = save
		p.curr, p.next = saveCurr, saveNext
		p.errs = p.errs[:saveErrs]
	}()

	if _, err := p.parseQualifiedName(); err != nil {
		return false
	}
	if p.curr.Type == token.LBRACKET {
		// arr[i] = x: recognized here so parseExprOrAssignment builds an
		// Assignment with an Index rather than parsing `arr[i]` as a
		// standalone indexing expression statement followed by a stray '='.
		return true
	}
	return p.curr.Type == token.ASSIGN
}
