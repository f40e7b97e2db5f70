/*
File    : molcore/parser/expression.go
Package : parser
*/
package parser

import (
	"strconv"
	"strings"

	"github.com/akashmaji946/molcore/ast"
	"github.com/akashmaji946/molcore/token"
)

// parseExpression is the entry point of the precedence cascade, lowest
// binding first: null-coalesce, ternary, ||, &&, equality, comparison,
// additive, multiplicative, unary, primary (spec.md §4.2).
func (p *Parser) parseExpression() (ast.Expr, error) {
	return p.parseNullCoalesce()
}

func (p *Parser) parseNullCoalesce() (ast.Expr, error) {
	left, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	for p.curr.Type == token.NULLCO {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		left = &ast.NullCoalesceExpr{Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseTernary() (ast.Expr, error) {
	cond, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.curr.Type != token.QUESTION {
		return cond, nil
	}
	if err := p.advance(); err != nil { // consume '?'
		return nil, err
	}

	then, err := p.parseFlowOrExpr(p.parseNullCoalesce)
	if err != nil {
		return nil, err
	}

	// `cond ? break` / `cond ? continue` need no else arm (spec.md §4.2).
	if _, ok := then.(*ast.FlowExpr); ok && p.curr.Type != token.COLON {
		return &ast.TernaryExpr{Cond: cond, Then: then, Else: nil}, nil
	}

	if err := p.expectAdvance(token.COLON); err != nil {
		return nil, err
	}
	elseX, err := p.parseFlowOrExpr(p.parseTernary)
	if err != nil {
		return nil, err
	}
	return &ast.TernaryExpr{Cond: cond, Then: then, Else: elseX}, nil
}

// parseFlowOrExpr parses a bare `break`/`continue` as a FlowExpr, or
// otherwise delegates to next, the continuation parser for the current
// ternary arm.
func (p *Parser) parseFlowOrExpr(next func() (ast.Expr, error)) (ast.Expr, error) {
	if p.currIsKeyword(token.BREAK) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.FlowExpr{Kind: ast.FlowBreak}, nil
	}
	if p.currIsKeyword(token.CONTINUE) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.FlowExpr{Kind: ast.FlowContinue}, nil
	}
	return next()
}

func (p *Parser) parseOr() (ast.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.curr.Type == token.OR {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: ast.BinOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.curr.Type == token.AND {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: ast.BinAnd, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.curr.Type == token.EQ || p.curr.Type == token.NE {
		op := ast.BinEq
		if p.curr.Type == token.NE {
			op = ast.BinNe
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseComparison() (ast.Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch p.curr.Type {
		case token.LT:
			op = ast.BinLt
		case token.LE:
			op = ast.BinLe
		case token.GT:
			op = ast.BinGt
		case token.GE:
			op = ast.BinGe
		default:
			return left, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.curr.Type == token.PLUS || p.curr.Type == token.MINUS {
		op := ast.BinAdd
		if p.curr.Type == token.MINUS {
			op = ast.BinSub
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.curr.Type == token.STAR || p.curr.Type == token.SLASH {
		op := ast.BinMul
		if p.curr.Type == token.SLASH {
			op = ast.BinDiv
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	var op ast.UnaryOp
	switch p.curr.Type {
	case token.MINUS:
		op = ast.UnaryNeg
	case token.PLUS:
		op = ast.UnaryPos
	case token.NOT:
		op = ast.UnaryNot
	default:
		return p.parsePrimary()
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	x, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpr{Op: op, X: x}, nil
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	switch {
	case p.curr.Type == token.NUMBER:
		lit := p.curr.Literal
		if err := p.advance(); err != nil {
			return nil, err
		}
		v, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			p.addErrorf("invalid number literal %q", lit)
			return nil, p.errs[len(p.errs)-1]
		}
		return &ast.NumberLit{Value: v}, nil

	case p.curr.Type == token.STRING:
		v := p.curr.Literal
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.StringLit{Value: v}, nil

	case p.currIsKeyword(token.NULL):
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.NullLit{}, nil

	case p.currIsKeyword(token.BREAK):
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.FlowExpr{Kind: ast.FlowBreak}, nil

	case p.currIsKeyword(token.CONTINUE):
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.FlowExpr{Kind: ast.FlowContinue}, nil

	case p.curr.Type == token.LPAREN:
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectAdvance(token.RPAREN); err != nil {
			return nil, err
		}
		return x, nil

	case p.curr.Type == token.LBRACKET:
		return p.parseArrayLit()

	case p.curr.Type == token.LBRACE:
		return p.parseStructLit()

	case p.curr.Type == token.IDENT:
		return p.parsePathOrCall()

	default:
		p.errs = append(p.errs, &Error{p.curr.Line, p.curr.Column, "expression", p.curr})
		return nil, p.errs[len(p.errs)-1]
	}
}

func (p *Parser) parseArrayLit() (ast.Expr, error) {
	if err := p.advance(); err != nil { // consume '['
		return nil, err
	}
	var elems []ast.Expr
	for p.curr.Type != token.RBRACKET {
		x, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elems = append(elems, x)
		if p.curr.Type == token.COMMA {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.expectAdvance(token.RBRACKET); err != nil {
		return nil, err
	}
	return &ast.ArrayLit{Elements: elems}, nil
}

func (p *Parser) parseStructLit() (ast.Expr, error) {
	if err := p.advance(); err != nil { // consume '{'
		return nil, err
	}
	var fields []ast.StructField
	for p.curr.Type != token.RBRACE {
		if !p.expect(token.IDENT) {
			return nil, p.errs[len(p.errs)-1]
		}
		name := p.curr.Literal
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expectAdvance(token.COLON); err != nil {
			return nil, err
		}
		val, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.StructField{Name: name, Value: val})
		if p.curr.Type == token.COMMA {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.expectAdvance(token.RBRACE); err != nil {
		return nil, err
	}
	return &ast.StructLit{Fields: fields}, nil
}

// parsePathOrCall parses a dotted identifier chain and decides, by what
// follows it, whether it denotes a builtin call (`math.sqrt(...)`), a
// `path.length` query, or an ordinary (optionally indexed) path read.
func (p *Parser) parsePathOrCall() (ast.Expr, error) {
	segs := []string{p.curr.Literal}
	if err := p.advance(); err != nil {
		return nil, err
	}
	for p.curr.Type == token.DOT {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if !p.expect(token.IDENT) {
			return nil, p.errs[len(p.errs)-1]
		}
		segs = append(segs, p.curr.Literal)
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	if p.curr.Type == token.LPAREN {
		return p.parseCallArgs(strings.Join(segs, "."))
	}

	if len(segs) >= 2 && strings.EqualFold(segs[len(segs)-1], "length") {
		return &ast.LengthOfExpr{Path: ast.NewQualifiedName(segs[:len(segs)-1]...)}, nil
	}

	name := ast.NewQualifiedName(segs...)
	var idx ast.Expr
	if p.curr.Type == token.LBRACKET {
		if err := p.advance(); err != nil {
			return nil, err
		}
		var err error
		idx, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectAdvance(token.RBRACKET); err != nil {
			return nil, err
		}
	}
	return &ast.PathExpr{Name: name, Index: idx}, nil
}

func (p *Parser) parseCallArgs(builtin string) (ast.Expr, error) {
	if err := p.advance(); err != nil { // consume '('
		return nil, err
	}
	var args []ast.Expr
	for p.curr.Type != token.RPAREN {
		x, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, x)
		if p.curr.Type == token.COMMA {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.expectAdvance(token.RPAREN); err != nil {
		return nil, err
	}
	return &ast.CallExpr{Builtin: builtin, Args: args}, nil
}
