// Package parser is a single-pass recursive-descent parser for BCPL sources.
//
// Statements are parsed against a StmtContext chain which answers the
// nesting questions (inside a loop? inside a valof? is a ';' required?)
// and carries the type cells used to unify resultis and return values.
// The first error aborts the file; warnings are collected on the side.
package parser

import (
	"context"
	"errors"
	"fmt"

	"bcplc/internal/ast"
	"bcplc/internal/diag"
	"bcplc/internal/lexer"
	"bcplc/internal/source"
	"bcplc/internal/token"
	"bcplc/internal/trace"
)

type Options struct {
	// Reporter receives lexer diagnostics as they are produced. May be nil.
	Reporter diag.Reporter
	// Program, when set, receives the parsed items of the file.
	Program *ast.Program
	// MaxWarnings caps collected warnings; 0 means unlimited.
	MaxWarnings int
}

// Result is the outcome of parsing one file.
type Result struct {
	File     source.FileID
	Items    []ast.Item
	IDs      []ast.ItemID // set when Options.Program was given
	Err      *diag.Diagnostic
	Warnings []*diag.Diagnostic
}

// OK reports whether the file parsed without a fatal diagnostic.
func (r Result) OK() bool { return r.Err == nil }

// Diagnostics returns the fatal diagnostic (if any) followed by the warnings.
func (r Result) Diagnostics() []*diag.Diagnostic {
	out := make([]*diag.Diagnostic, 0, len(r.Warnings)+1)
	if r.Err != nil {
		out = append(out, r.Err)
	}
	return append(out, r.Warnings...)
}

// Parser holds the state for one file: the token cursor and collected warnings.
// The statement context is passed down the recursion, never stored here.
type Parser struct {
	lx       *lexer.Lexer
	file     *source.File
	tok      token.Token // current, not yet consumed
	prev     token.Token // last consumed
	lexErr   *diag.Diagnostic
	opts     Options
	warnings []*diag.Diagnostic
}

// lexCapture keeps the first lexer error so Invalid tokens can be explained.
type lexCapture struct {
	p    *Parser
	next diag.Reporter
}

func (c lexCapture) Report(d *diag.Diagnostic) {
	if d.IsError() && c.p.lexErr == nil {
		c.p.lexErr = d
	}
	if c.next != nil {
		c.next.Report(d)
	}
}

func newParser(file *source.File, opts Options) *Parser {
	p := &Parser{file: file, opts: opts}
	p.lx = lexer.New(file, lexer.Options{Reporter: lexCapture{p: p, next: opts.Reporter}})
	p.tok = p.lx.Next()
	return p
}

// ParseFile parses every top-level definition of the file.
func ParseFile(ctx context.Context, fs *source.FileSet, fileID source.FileID, opts Options) Result {
	file := fs.Get(fileID)
	if file == nil {
		d := diag.NewError(diag.IOLoadFailed, source.Location{File: fileID}, fmt.Sprintf("unknown file id %d", fileID))
		return Result{File: fileID, Err: d}
	}

	ctx, span := trace.StartSpan(ctx, trace.ScopeFile, "parse:"+file.Path)

	p := newParser(file, opts)
	items, err := p.parseItems(trace.FromContext(ctx), span.ID())
	res := Result{File: fileID, Warnings: p.warnings}
	if err != nil {
		res.Err = asDiagnostic(err)
		span.End("failed")
		return res
	}
	res.Items = items
	if opts.Program != nil {
		res.IDs = opts.Program.Add(items...)
	}
	span.WithExtra("items", fmt.Sprint(len(items))).End("")
	return res
}

// StmtResult is the outcome of ParseStatements.
type StmtResult struct {
	Stmts    []*ast.Stmt
	Err      *diag.Diagnostic
	Warnings []*diag.Diagnostic
}

// ParseStatements parses a bare statement sequence under the given context
// (nil means the empty root context). Statements may be separated by ';'.
func ParseStatements(file *source.File, sc *StmtContext, opts Options) StmtResult {
	if sc == nil {
		sc = Empty()
	}
	p := newParser(file, opts)
	var res StmtResult
	for !p.at(token.EOF) {
		if _, ok := p.advanceIf(token.Semicolon); ok {
			continue
		}
		st, err := p.parseStmt(sc)
		if err != nil {
			res.Err = asDiagnostic(err)
			break
		}
		res.Stmts = append(res.Stmts, st)
	}
	res.Warnings = p.warnings
	return res
}

func asDiagnostic(err error) *diag.Diagnostic {
	var d *diag.Diagnostic
	if errors.As(err, &d) {
		return d
	}
	return diag.NewError(diag.SynInfo, source.Location{}, err.Error())
}
