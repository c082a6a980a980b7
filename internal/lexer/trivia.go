package lexer

import (
	"bcplc/internal/diag"
	"bcplc/internal/token"
)

// collectLeadingTrivia gathers whitespace and comments preceding the next token.
// Runs of spaces/tabs and runs of newlines are coalesced. Block comments nest.
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		switch {
		case b == ' ' || b == '\t':
			for b2 := lx.cursor.Peek(); b2 == ' ' || b2 == '\t'; b2 = lx.cursor.Peek() {
				lx.cursor.Bump()
			}
			lx.holdTrivia(token.TriviaSpace, start)
			continue
		case b == '\n':
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.holdTrivia(token.TriviaNewline, start)
			continue
		case b == '/':
			if lx.scanCommentIntoHold() {
				continue
			}
		}
		return
	}
}

func (lx *Lexer) holdTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
}

func (lx *Lexer) scanCommentIntoHold() bool {
	start := lx.cursor.Mark()
	if !lx.cursor.Eat('/') {
		return false
	}
	switch lx.cursor.Peek() {
	case '/':
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		lx.holdTrivia(token.TriviaLineComment, start)
		return true

	case '*':
		lx.cursor.Bump()
		depth := 1
		for !lx.cursor.EOF() && depth > 0 {
			if b0, b1, ok := lx.cursor.Peek2(); ok {
				if b0 == '/' && b1 == '*' {
					lx.cursor.Bump()
					lx.cursor.Bump()
					depth++
					continue
				}
				if b0 == '*' && b1 == '/' {
					lx.cursor.Bump()
					lx.cursor.Bump()
					depth--
					continue
				}
			}
			lx.cursor.Bump()
		}
		if depth > 0 {
			lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
		}
		lx.holdTrivia(token.TriviaBlockComment, start)
		return true
	default:
		lx.cursor.Reset(start)
		return false
	}
}
