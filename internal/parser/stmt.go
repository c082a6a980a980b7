package parser

import (
	"bcplc/internal/ast"
	"bcplc/internal/diag"
	"bcplc/internal/token"
	"bcplc/internal/types"
)

// parseStmt parses one statement, a trailing compound chain if a '<>'
// follows, and the terminator when the context demands one.
func (p *Parser) parseStmt(sc *StmtContext) (*ast.Stmt, error) {
	st, err := p.parseSingleStmt(sc)
	if err != nil {
		return nil, err
	}
	if p.at(token.Compound) {
		return p.parseCompound(sc, st)
	}
	if needsTerminator(st.Kind) {
		if err := p.semicolonIfRequired(sc); err != nil {
			return nil, err
		}
	}
	return st, nil
}

func (p *Parser) parseSingleStmt(sc *StmtContext) (*ast.Stmt, error) {
	switch p.tok.Kind {
	case token.LBrace:
		return p.parseBlock(sc)
	case token.KwResultis:
		return p.parseResultIs(sc)
	case token.KwReturn:
		return p.parseReturn(sc)
	case token.KwIf:
		return p.parseIf(sc)
	case token.KwUnless:
		return p.parseUnless(sc)
	case token.KwWhile:
		return p.parseWhile(sc, false)
	case token.KwUntil:
		return p.parseWhile(sc, true)
	case token.KwFor:
		return p.parseFor(sc)
	case token.KwSwitchon:
		return p.parseSwitchOn(sc)
	case token.KwCase:
		return p.parseCase(sc)
	case token.KwDefault:
		return p.parseDefault(sc)
	case token.KwEndcase:
		return p.parseJump(sc, ast.StmtEndCase)
	case token.KwBreak:
		return p.parseJump(sc, ast.StmtBreak)
	case token.KwLoop:
		return p.parseJump(sc, ast.StmtLoop)
	default:
		if !p.startsExpr() {
			return nil, p.unexpectedStmt()
		}
		return p.parseExprStmt(sc)
	}
}

func needsTerminator(k ast.StmtKind) bool {
	switch k {
	case ast.StmtResultIs, ast.StmtReturn, ast.StmtEndCase, ast.StmtBreak, ast.StmtLoop, ast.StmtExpr:
		return true
	default:
		return false
	}
}

func (p *Parser) semicolonIfRequired(sc *StmtContext) error {
	if !sc.RequireSemicolon() {
		return nil
	}
	if _, ok := p.advanceIf(token.Semicolon); ok {
		return nil
	}
	if p.tok.Kind == token.Invalid && p.lexErr != nil {
		return p.lexErr
	}
	loc := p.prev.Loc
	loc.Column = loc.End()
	loc.Width = 1
	return diag.NewError(diag.SynExpectSemicolon, loc, "expected ';' after statement, found "+describeTok(p.tok)).
		WithHint("statements inside a block end with ';'")
}

func (p *Parser) unexpectedStmt() error {
	if p.tok.Kind == token.Invalid && p.lexErr != nil {
		return p.lexErr
	}
	return diag.NewError(diag.SynUnexpectedToken, p.diagLoc(), "unexpected "+describeTok(p.tok)+", expected statement")
}

// parseCompound folds `S1 <> S2 <> ...` into one node. The chained statements
// are parsed under a NoBlock frame and only the chain as a whole is terminated.
func (p *Parser) parseCompound(sc *StmtContext, first *ast.Stmt) (*ast.Stmt, error) {
	stmts := []*ast.Stmt{first}
	chain := sc.NoBlock()
	for {
		if _, ok := p.advanceIf(token.Compound); !ok {
			break
		}
		st, err := p.parseSingleStmt(chain)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, st)
	}
	node := &ast.Stmt{Kind: ast.StmtCompound, Loc: p.finish(first.Loc), Stmts: stmts}
	if err := p.semicolonIfRequired(sc); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *Parser) parseBlock(sc *StmtContext) (*ast.Stmt, error) {
	open := p.advance()
	inner := sc.Block()
	var stmts []*ast.Stmt
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			return nil, diag.NewError(diag.SynUnclosedBrace, p.diagLoc(), "expected '}' to close block").
				WithSecondary(diag.NewNote(open.Loc, "block opened here"))
		}
		if _, ok := p.advanceIf(token.Semicolon); ok {
			continue
		}
		st, err := p.parseStmt(inner)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, st)
	}
	p.advance()
	return &ast.Stmt{Kind: ast.StmtBlock, Loc: p.finish(open.Loc), Stmts: stmts}, nil
}

func (p *Parser) parseResultIs(sc *StmtContext) (*ast.Stmt, error) {
	kw := p.advance()
	cell, ok := sc.LastValofType()
	if !ok {
		return nil, invalidStmt(kw.Loc, "resultis", "valof")
	}
	e, err := p.parseExpr(sc)
	if err != nil {
		return nil, err
	}
	return &ast.Stmt{Kind: ast.StmtResultIs, Loc: p.finish(kw.Loc), Expr: cell.Unify(e)}, nil
}

func (p *Parser) parseReturn(sc *StmtContext) (*ast.Stmt, error) {
	kw := p.advance()
	cell, ok := sc.FunctionReturnType()
	if !ok {
		return nil, invalidStmt(kw.Loc, "return", "function")
	}
	e, err := p.parseExpr(sc)
	if err != nil {
		return nil, err
	}
	return &ast.Stmt{Kind: ast.StmtReturn, Loc: p.finish(kw.Loc), Expr: cell.Unify(e)}, nil
}

// parseCondition parses a condition and coerces it to bool.
func (p *Parser) parseCondition(sc *StmtContext) (*ast.Expr, error) {
	cond, err := p.parseExpr(sc)
	if err != nil {
		return nil, err
	}
	return cond.CastIfNeeded(types.Bool), nil
}

// parseIf parses both branches in the same context as the if itself.
func (p *Parser) parseIf(sc *StmtContext) (*ast.Stmt, error) {
	kw := p.advance()
	cond, err := p.parseCondition(sc)
	if err != nil {
		return nil, err
	}
	p.advanceIf(token.KwDo, token.KwThen)
	body, err := p.parseStmt(sc)
	if err != nil {
		return nil, err
	}
	st := &ast.Stmt{Kind: ast.StmtIf, Expr: cond, Body: body}
	if _, ok := p.advanceIf(token.KwElse); ok {
		if st.Else, err = p.parseStmt(sc); err != nil {
			return nil, err
		}
	}
	st.Loc = p.finish(kw.Loc)
	return st, nil
}

func (p *Parser) parseUnless(sc *StmtContext) (*ast.Stmt, error) {
	kw := p.advance()
	cond, err := p.parseCondition(sc)
	if err != nil {
		return nil, err
	}
	p.advanceIf(token.KwDo, token.KwThen)
	body, err := p.parseStmt(sc)
	if err != nil {
		return nil, err
	}
	return &ast.Stmt{Kind: ast.StmtUnless, Loc: p.finish(kw.Loc), Expr: cond, Body: body}, nil
}

// parseWhile handles while and until; until is a negated while.
func (p *Parser) parseWhile(sc *StmtContext, negated bool) (*ast.Stmt, error) {
	kw := p.advance()
	cond, err := p.parseCondition(sc)
	if err != nil {
		return nil, err
	}
	p.advanceIf(token.KwDo)
	body, err := p.parseStmt(sc.Loop())
	if err != nil {
		return nil, err
	}
	return &ast.Stmt{Kind: ast.StmtWhile, Loc: p.finish(kw.Loc), Expr: cond, Body: body, Negated: negated}, nil
}

// parseFor parses `for I = E1 [to E2] [by E3] [do] S`. The loop variable
// takes the type of E1; bounds of another type are cast to it.
func (p *Parser) parseFor(sc *StmtContext) (*ast.Stmt, error) {
	kw := p.advance()
	name, err := p.expectName("loop variable")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Eq); err != nil {
		return nil, err
	}
	init, err := p.parseExpr(sc)
	if err != nil {
		return nil, err
	}
	st := &ast.Stmt{
		Kind: ast.StmtFor,
		Var:  &ast.LocalDecl{Name: name.Text, Loc: name.Loc, Type: init.Type},
		Expr: init,
	}
	if _, ok := p.advanceIf(token.KwTo); ok {
		if st.To, err = p.parseLoopBound(sc, init.Type); err != nil {
			return nil, err
		}
	}
	if _, ok := p.advanceIf(token.KwBy); ok {
		if st.By, err = p.parseLoopBound(sc, init.Type); err != nil {
			return nil, err
		}
	}
	p.advanceIf(token.KwDo)
	if st.Body, err = p.parseStmt(sc.Loop()); err != nil {
		return nil, err
	}
	st.Loc = p.finish(kw.Loc)
	return st, nil
}

func (p *Parser) parseLoopBound(sc *StmtContext, target types.TypeID) (*ast.Expr, error) {
	e, err := p.parseExpr(sc)
	if err != nil {
		return nil, err
	}
	if target.Known() {
		e = e.CastIfNeeded(target)
	}
	return e, nil
}

func (p *Parser) parseSwitchOn(sc *StmtContext) (*ast.Stmt, error) {
	kw := p.advance()
	cond, err := p.parseExpr(sc)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.KwInto); err != nil {
		return nil, err
	}
	marker := &DefaultMarker{}
	body, err := p.parseStmt(sc.SwitchOn(marker, cond.Type))
	if err != nil {
		return nil, err
	}
	return &ast.Stmt{Kind: ast.StmtSwitchOn, Loc: p.finish(kw.Loc), Expr: cond, Body: body}, nil
}

func (p *Parser) parseCase(sc *StmtContext) (*ast.Stmt, error) {
	kw := p.advance()
	_, condType, ok := sc.InSwitchOn()
	if !ok {
		return nil, invalidStmt(kw.Loc, "case", "switchon")
	}
	label, err := p.parseExpr(sc)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Colon); err != nil {
		return nil, err
	}
	if condType.Known() {
		label = label.CastIfNeeded(condType)
	}
	return &ast.Stmt{Kind: ast.StmtCase, Loc: p.finish(kw.Loc), Expr: label}, nil
}

func (p *Parser) parseDefault(sc *StmtContext) (*ast.Stmt, error) {
	kw := p.advance()
	marker, _, ok := sc.InSwitchOn()
	if !ok {
		return nil, invalidStmt(kw.Loc, "default", "switchon")
	}
	if _, err := p.expect(token.Colon); err != nil {
		return nil, err
	}
	loc := p.finish(kw.Loc)
	if first, ok := marker.Claim(loc); !ok {
		return nil, diag.NewError(diag.SynRedefinition, loc, "redefinition of default case").
			WithHint("a switchon may have only one default label").
			WithSecondary(diag.NewNote(first, "first default case defined here"))
	}
	return &ast.Stmt{Kind: ast.StmtDefault, Loc: loc}, nil
}

// parseJump handles endcase, break and loop, which only need an enclosing construct.
func (p *Parser) parseJump(sc *StmtContext, kind ast.StmtKind) (*ast.Stmt, error) {
	kw := p.advance()
	switch kind {
	case ast.StmtEndCase:
		if _, _, ok := sc.InSwitchOn(); !ok {
			return nil, invalidStmt(kw.Loc, "endcase", "switchon")
		}
	default:
		if !sc.InLoop() {
			return nil, invalidStmt(kw.Loc, kw.Text, "loop")
		}
	}
	return &ast.Stmt{Kind: kind, Loc: kw.Loc}, nil
}

func (p *Parser) parseExprStmt(sc *StmtContext) (*ast.Stmt, error) {
	loc := p.tok.Loc
	e, err := p.parseExpr(sc)
	if err != nil {
		return nil, err
	}
	loc = p.finish(loc)
	if !e.HasSideEffect() {
		p.warn(diag.NewWarning(diag.SynExprWithoutSideEffect, loc, "expression without side effect").
			WithHint("its value is computed and discarded"))
	}
	return &ast.Stmt{Kind: ast.StmtExpr, Loc: loc, Expr: e}, nil
}
