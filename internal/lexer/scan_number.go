package lexer

import (
	"bcplc/internal/diag"
	"bcplc/internal/token"
)

// scanNumber accepts 123, 1.5, 2.0e-3, #17 (octal), #x1F (hex) and #b101 (binary).
// Malformed forms are reported and returned as Invalid.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if lx.cursor.Eat('#') {
		digit := isOct
		switch lx.cursor.Peek() {
		case 'x', 'X':
			lx.cursor.Bump()
			digit = isHex
		case 'b', 'B':
			lx.cursor.Bump()
			digit = isBin
		case 'o', 'O':
			lx.cursor.Bump()
		}
		n := 0
		for digit(lx.cursor.Peek()) {
			lx.cursor.Bump()
			n++
		}
		if n == 0 || isDec(lx.cursor.Peek()) || isHex(lx.cursor.Peek()) {
			for isIdentContinueByte(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			tok := lx.emit(token.Invalid, start)
			lx.errLex(diag.LexBadNumber, tok.Span, "malformed number literal "+tok.Text)
			return tok
		}
		return lx.emit(token.IntLit, start)
	}

	kind := token.IntLit
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		kind = token.FloatLit
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		mark := lx.cursor.Mark()
		lx.cursor.Bump()
		if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			if kind == token.IntLit {
				// "2e" is the number 2 followed by an identifier
				lx.cursor.Reset(mark)
				return lx.emit(kind, start)
			}
			tok := lx.emit(token.Invalid, start)
			lx.errLex(diag.LexBadNumber, tok.Span, "expected digit after exponent")
			return tok
		}
		kind = token.FloatLit
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	return lx.emit(kind, start)
}
