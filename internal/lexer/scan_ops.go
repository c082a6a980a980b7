package lexer

import (
	"bcplc/internal/diag"
	"bcplc/internal/token"
)

// scanOperatorOrPunct is greedy: two-byte operators win over their one-byte prefixes.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	switch {
	case lx.try2('<', '>'):
		return lx.emit(token.Compound, start)
	case lx.try2(':', '='):
		return lx.emit(token.Assign, start)
	case lx.try2('~', '='):
		return lx.emit(token.NotEq, start)
	case lx.try2('<', '='):
		return lx.emit(token.LtEq, start)
	case lx.try2('>', '='):
		return lx.emit(token.GtEq, start)
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '+':
		return lx.emit(token.Plus, start)
	case '-':
		return lx.emit(token.Minus, start)
	case '*':
		return lx.emit(token.Star, start)
	case '/':
		return lx.emit(token.Slash, start)
	case '=':
		return lx.emit(token.Eq, start)
	case '<':
		return lx.emit(token.Lt, start)
	case '>':
		return lx.emit(token.Gt, start)
	case '~':
		return lx.emit(token.Tilde, start)
	case '&':
		return lx.emit(token.Amp, start)
	case '|':
		return lx.emit(token.Pipe, start)
	case ':':
		return lx.emit(token.Colon, start)
	case ';':
		return lx.emit(token.Semicolon, start)
	case ',':
		return lx.emit(token.Comma, start)
	case '(':
		return lx.emit(token.LParen, start)
	case ')':
		return lx.emit(token.RParen, start)
	case '{':
		return lx.emit(token.LBrace, start)
	case '}':
		return lx.emit(token.RBrace, start)
	default:
		if ch >= utf8RuneSelf {
			// consume the rest of the rune so the span covers one character
			lx.cursor.Reset(start)
			lx.bumpRune()
		}
		tok := lx.emit(token.Invalid, start)
		lx.errLex(diag.LexUnknownChar, tok.Span, "unknown character "+tok.Text)
		return tok
	}
}
