package lexer

import (
	"bcplc/internal/diag"
	"bcplc/internal/token"
)

// scanString scans "..." with '*' as the escape character (*n, *t, *", **).
func (lx *Lexer) scanString() token.Token {
	return lx.scanQuoted('"', token.StringLit, diag.LexUnterminatedString, "string")
}

// scanChar scans a character literal such as 'a' or '*n'.
func (lx *Lexer) scanChar() token.Token {
	tok := lx.scanQuoted('\'', token.CharLit, diag.LexUnterminatedChar, "character")
	if tok.Kind == token.CharLit {
		body := tok.Text[1 : len(tok.Text)-1]
		if n := len([]rune(body)); n == 0 || (n > 1 && !(n == 2 && body[0] == '*')) {
			lx.errLex(diag.LexUnterminatedChar, tok.Span, "character literal must hold exactly one character")
			tok.Kind = token.Invalid
		}
	}
	return tok
}

func (lx *Lexer) scanQuoted(quote byte, kind token.Kind, code diag.Code, what string) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case quote:
			lx.cursor.Bump()
			return lx.emit(kind, start)
		case '*':
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				continue
			}
			lx.cursor.Bump()
		case '\n':
			tok := lx.emit(token.Invalid, start)
			lx.errLex(code, tok.Span, "newline in "+what+" literal")
			return tok
		default:
			lx.cursor.Bump()
		}
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(code, tok.Span, "unterminated "+what+" literal")
	return tok
}
