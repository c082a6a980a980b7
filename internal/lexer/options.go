package lexer

import (
	"bcplc/internal/diag"
	"bcplc/internal/source"
)

type Options struct {
	Reporter diag.Reporter // may be nil: errors are dropped and lexing goes on
	// KeepTrivia attaches comments and whitespace to Token.Leading.
	KeepTrivia bool
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	diag.ReportError(lx.opts.Reporter, code, lx.file.Locate(sp), msg)
}
