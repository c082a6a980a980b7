package parser

import (
	"bcplc/internal/ast"
	"bcplc/internal/diag"
	"bcplc/internal/source"
	"bcplc/internal/token"
	"bcplc/internal/types"
)

// parseExpr parses an expression. The statement context is needed because
// a valof expression contains statements.
func (p *Parser) parseExpr(sc *StmtContext) (*ast.Expr, error) {
	return p.parseBinaryExpr(sc, precAssignment)
}

func (p *Parser) startsExpr() bool {
	switch p.tok.Kind {
	case token.Ident, token.IntLit, token.FloatLit, token.CharLit, token.StringLit,
		token.KwTrue, token.KwFalse, token.LParen, token.KwValof,
		token.Minus, token.Plus, token.Tilde, token.KwNot:
		return true
	default:
		return false
	}
}

// parseBinaryExpr is precedence climbing over binaryPrec.
func (p *Parser) parseBinaryExpr(sc *StmtContext, minPrec int) (*ast.Expr, error) {
	left, err := p.parseUnaryExpr(sc)
	if err != nil {
		return nil, err
	}
	for {
		prec, rightAssoc := binaryPrec(p.tok.Kind)
		if prec < minPrec {
			return left, nil
		}
		opTok := p.advance()
		next := prec + 1
		if rightAssoc {
			next = prec
		}
		right, err := p.parseBinaryExpr(sc, next)
		if err != nil {
			return nil, err
		}

		if opTok.Kind == token.Assign {
			if left.Kind != ast.ExprIdent {
				return nil, diag.NewError(diag.SynExpectIdentifier, left.Loc, "left side of ':=' must be a name").
					WithSecondary(diag.NewNote(opTok.Loc, "assignment here"))
			}
			left = &ast.Expr{Kind: ast.ExprAssign, Loc: cover(left.Loc, right.Loc), Type: types.Unit, X: left, Y: right}
			continue
		}
		op := binaryOps[opTok.Kind]
		left = &ast.Expr{
			Kind: ast.ExprBinary,
			Loc:  cover(left.Loc, right.Loc),
			Type: types.BinaryResult(op.Class(), left.Type, right.Type),
			Op:   op,
			X:    left,
			Y:    right,
		}
	}
}

func (p *Parser) parseUnaryExpr(sc *StmtContext) (*ast.Expr, error) {
	switch p.tok.Kind {
	case token.Minus, token.Plus:
		opTok := p.advance()
		operand, err := p.parseUnaryExpr(sc)
		if err != nil {
			return nil, err
		}
		op := ast.OpNeg
		if opTok.Kind == token.Plus {
			op = ast.OpPlus
		}
		return &ast.Expr{
			Kind: ast.ExprUnary,
			Loc:  cover(opTok.Loc, operand.Loc),
			Type: types.UnaryResult(types.OpArithmetic, operand.Type),
			Op:   op,
			X:    operand,
		}, nil
	case token.Tilde, token.KwNot:
		opTok := p.advance()
		operand, err := p.parseBinaryExpr(sc, precRelational)
		if err != nil {
			return nil, err
		}
		return &ast.Expr{
			Kind: ast.ExprUnary,
			Loc:  cover(opTok.Loc, operand.Loc),
			Type: types.UnaryResult(types.OpLogical, operand.Type),
			Op:   ast.OpNot,
			X:    operand,
		}, nil
	}
	return p.parsePostfixExpr(sc)
}

func (p *Parser) parsePostfixExpr(sc *StmtContext) (*ast.Expr, error) {
	e, err := p.parsePrimaryExpr(sc)
	if err != nil {
		return nil, err
	}
	for p.at(token.LParen) {
		p.advance()
		call := &ast.Expr{Kind: ast.ExprCall, X: e}
		for !p.at(token.RParen) {
			arg, err := p.parseExpr(sc)
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
			if _, ok := p.advanceIf(token.Comma); !ok {
				break
			}
		}
		closeTok, err := p.expect(token.RParen)
		if err != nil {
			return nil, err
		}
		call.Loc = cover(e.Loc, closeTok.Loc)
		e = call
	}
	return e, nil
}

var literalTypes = map[token.Kind]struct {
	kind ast.ExprKind
	typ  types.TypeID
}{
	token.IntLit:    {ast.ExprIntLit, types.Int},
	token.FloatLit:  {ast.ExprFloatLit, types.Float},
	token.CharLit:   {ast.ExprCharLit, types.Char},
	token.StringLit: {ast.ExprStringLit, types.String},
	token.KwTrue:    {ast.ExprBoolLit, types.Bool},
	token.KwFalse:   {ast.ExprBoolLit, types.Bool},
}

func (p *Parser) parsePrimaryExpr(sc *StmtContext) (*ast.Expr, error) {
	if lit, ok := literalTypes[p.tok.Kind]; ok {
		t := p.advance()
		return &ast.Expr{Kind: lit.kind, Loc: t.Loc, Type: lit.typ, Text: t.Text}, nil
	}
	switch p.tok.Kind {
	case token.Ident:
		t := p.advance()
		return &ast.Expr{Kind: ast.ExprIdent, Loc: t.Loc, Type: types.NoTypeID, Text: t.Text}, nil
	case token.LParen:
		p.advance()
		inner, err := p.parseExpr(sc)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return inner, nil
	case token.KwValof:
		return p.parseValof(sc)
	}
	if p.tok.Kind == token.Invalid && p.lexErr != nil {
		return nil, p.lexErr
	}
	return nil, diag.NewError(diag.SynExpectExpression, p.diagLoc(), "expected expression, found "+describeTok(p.tok))
}

// parseValof parses `valof S`. The expression takes the type fixed by the
// first resultis of S, or stays unresolved when S has none.
func (p *Parser) parseValof(sc *StmtContext) (*ast.Expr, error) {
	kw := p.advance()
	cell := NewTypeCell()
	body, err := p.parseStmt(sc.ValOf(cell))
	if err != nil {
		return nil, err
	}
	typ, _ := cell.Fixed()
	return &ast.Expr{Kind: ast.ExprValof, Loc: p.finish(kw.Loc), Type: typ, Body: body}, nil
}

// cover spans from the start of a to the end of b when both sit on one line.
func cover(a, b source.Location) source.Location {
	if a.File == b.File && a.Line == b.Line && b.End() > a.Column {
		a.Width = b.End() - a.Column
	}
	return a
}
