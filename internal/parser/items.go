package parser

import (
	"bcplc/internal/ast"
	"bcplc/internal/diag"
	"bcplc/internal/source"
	"bcplc/internal/token"
	"bcplc/internal/trace"
	"bcplc/internal/types"
)

// parseItems is the top-level loop: `let` definitions joined by `and`,
// optionally separated by ';'.
func (p *Parser) parseItems(tracer trace.Tracer, parent uint64) ([]ast.Item, error) {
	var items []ast.Item
	for !p.at(token.EOF) {
		if _, ok := p.advanceIf(token.Semicolon); ok {
			continue
		}
		kw, ok := p.advanceIf(token.KwLet)
		if !ok {
			if p.tok.Kind == token.Invalid && p.lexErr != nil {
				return nil, p.lexErr
			}
			return nil, diag.NewError(diag.SynUnexpectedTopLevel, p.diagLoc(),
				"unexpected "+describeTok(p.tok)+" at top level").
				WithHint("top-level definitions start with 'let'")
		}
		for {
			span := trace.Begin(tracer, trace.ScopeNode, "item", parent)
			it, err := p.parseDefinition(kw.Loc)
			if err != nil {
				span.End("failed")
				return nil, err
			}
			span.End(it.Kind.String() + " " + it.Name.Value)
			items = append(items, it)
			if kw, ok = p.advanceIf(token.KwAnd); !ok {
				break
			}
		}
	}
	return items, nil
}

// parseDefinition parses one of
//
//	NAME(params) be S
//	NAME(params) = E
//	NAME = E
func (p *Parser) parseDefinition(loc source.Location) (ast.Item, error) {
	name, err := p.expectName("definition")
	if err != nil {
		return ast.Item{}, err
	}
	it := ast.Item{Name: source.WithLocation(name.Text, name.Loc)}

	if !p.at(token.LParen) {
		if _, err := p.expect(token.Eq); err != nil {
			return ast.Item{}, err
		}
		value, err := p.parseExpr(Empty())
		if err != nil {
			return ast.Item{}, err
		}
		it.Kind, it.Value, it.ResultType = ast.ItemGlobal, value, value.Type
		it.Loc = p.finish(loc)
		return it, nil
	}

	if it.Params, err = p.parseParams(); err != nil {
		return ast.Item{}, err
	}
	cell := NewTypeCell()
	body := FunctionContext(cell)
	switch {
	case p.at(token.KwBe):
		p.advance()
		it.Kind = ast.ItemRoutine
		if it.Body, err = p.parseStmt(body); err != nil {
			return ast.Item{}, err
		}
		// a routine that never returns a value yields unit
		cell.Fix(types.Unit)
		it.ResultType, _ = cell.Fixed()
	case p.at(token.Eq):
		p.advance()
		it.Kind = ast.ItemFunction
		value, err := p.parseExpr(body)
		if err != nil {
			return ast.Item{}, err
		}
		it.Value = cell.Unify(value)
		it.ResultType, _ = cell.Fixed()
	default:
		return ast.Item{}, p.unexpected(token.KwBe, token.Eq)
	}
	it.Loc = p.finish(loc)
	return it, nil
}

func (p *Parser) parseParams() ([]ast.LocalDecl, error) {
	p.advance()
	var params []ast.LocalDecl
	seen := make(map[string]source.Location)
	for !p.at(token.RParen) {
		name, err := p.expectName("parameter")
		if err != nil {
			return nil, err
		}
		if first, dup := seen[name.Text]; dup {
			return nil, diag.NewError(diag.SynRedefinition, name.Loc, "duplicate parameter '"+name.Text+"'").
				WithSecondary(diag.NewNote(first, "first declared here"))
		}
		seen[name.Text] = name.Loc
		params = append(params, ast.LocalDecl{Name: name.Text, Loc: name.Loc, Type: types.NoTypeID})
		if _, ok := p.advanceIf(token.Comma); !ok {
			break
		}
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) expectName(what string) (token.Token, error) {
	if p.at(token.Ident) {
		return p.advance(), nil
	}
	if p.tok.Kind == token.Invalid && p.lexErr != nil {
		return token.Token{}, p.lexErr
	}
	return token.Token{}, diag.NewError(diag.SynExpectIdentifier, p.diagLoc(),
		"expected "+what+" name, found "+describeTok(p.tok))
}
