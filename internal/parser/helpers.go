package parser

import (
	"fmt"
	"slices"
	"strings"

	"bcplc/internal/diag"
	"bcplc/internal/source"
	"bcplc/internal/token"
)

func (p *Parser) at(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.tok.Kind)
}

// advance consumes the current token and returns it.
func (p *Parser) advance() token.Token {
	t := p.tok
	if t.Kind != token.EOF {
		p.prev = t
		p.tok = p.lx.Next()
	}
	return t
}

// advanceIf consumes the current token only when it is one of kinds.
func (p *Parser) advanceIf(kinds ...token.Kind) (token.Token, bool) {
	if p.at(kinds...) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// expect consumes a token of one of kinds or fails with SynUnexpectedToken.
func (p *Parser) expect(kinds ...token.Kind) (token.Token, error) {
	if p.at(kinds...) {
		return p.advance(), nil
	}
	return token.Token{}, p.unexpected(kinds...)
}

func (p *Parser) unexpected(kinds ...token.Kind) error {
	if p.tok.Kind == token.Invalid && p.lexErr != nil {
		return p.lexErr
	}
	msg := "unexpected " + describeTok(p.tok)
	if len(kinds) > 0 {
		msg += ", expected " + expectedList(kinds)
	}
	return diag.NewError(diag.SynUnexpectedToken, p.diagLoc(), msg)
}

// diagLoc anchors a diagnostic on the current token; at EOF it points just
// past the last consumed token.
func (p *Parser) diagLoc() source.Location {
	if p.tok.Kind == token.EOF && !p.prev.Loc.IsZero() {
		loc := p.prev.Loc
		loc.Column = loc.End()
		loc.Width = 1
		return loc
	}
	return p.tok.Loc
}

// finish widens loc to the end of the last consumed token when both are on one line.
func (p *Parser) finish(loc source.Location) source.Location {
	last := p.prev.Loc
	if last.File == loc.File && last.Line == loc.Line && last.End() > loc.Column {
		loc.Width = last.End() - loc.Column
	}
	return loc
}

func (p *Parser) warn(d *diag.Diagnostic) {
	if p.opts.MaxWarnings > 0 && len(p.warnings) >= p.opts.MaxWarnings {
		return
	}
	p.warnings = append(p.warnings, d)
}

func describeTok(t token.Token) string {
	switch t.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident:
		return fmt.Sprintf("identifier '%s'", t.Text)
	case token.IntLit, token.FloatLit, token.CharLit, token.StringLit:
		return fmt.Sprintf("literal %s", t.Text)
	default:
		return t.Kind.Describe()
	}
}

func expectedList(kinds []token.Kind) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = k.Describe()
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "one of " + strings.Join(parts, ", ")
}

// invalidStmt reports a control keyword used outside of the construct it needs.
func invalidStmt(loc source.Location, keyword, required string) error {
	return diag.NewError(diag.SynInvalidStmt, loc,
		fmt.Sprintf("%s outside %s", keyword, required)).
		WithHint(fmt.Sprintf("'%s' is only valid inside %s", keyword, article(required)))
}

func article(construct string) string {
	switch construct {
	case "function":
		return "a function body"
	case "loop":
		return "a loop body"
	default:
		return "a '" + construct + "'"
	}
}
