package parser

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"bcplc/internal/ast"
	"bcplc/internal/diag"
	"bcplc/internal/source"
)

func virtualFile(t *testing.T, input string) (*source.FileSet, source.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	return fs, fs.AddVirtual("test.b", []byte(input))
}

// parseStmts parses input as a statement sequence under sc.
func parseStmts(t *testing.T, input string, sc *StmtContext) StmtResult {
	t.Helper()
	fs, id := virtualFile(t, input)
	return ParseStatements(fs.Get(id), sc, Options{})
}

// mustParseStmt parses exactly one statement and fails the test on errors.
func mustParseStmt(t *testing.T, input string, sc *StmtContext) *ast.Stmt {
	t.Helper()
	res := parseStmts(t, input, sc)
	if res.Err != nil {
		t.Fatalf("%q: unexpected error: %s", input, summary(res.Err))
	}
	if len(res.Stmts) != 1 {
		t.Fatalf("%q: expected 1 statement, got %d", input, len(res.Stmts))
	}
	return res.Stmts[0]
}

func parseSource(t *testing.T, input string) (Result, *ast.Program) {
	t.Helper()
	fs, id := virtualFile(t, input)
	prog := ast.NewProgram()
	return ParseFile(context.Background(), fs, id, Options{Program: prog}), prog
}

func summary(d *diag.Diagnostic) string {
	if d == nil {
		return "<none>"
	}
	return fmt.Sprintf("[%s] %s @%d:%d", d.Code.ID(), d.Message, d.Primary.Line, d.Primary.Column)
}

func diagnosticsSummary(diags []*diag.Diagnostic) string {
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = summary(d)
	}
	return strings.Join(lines, "; ")
}

func expectLoc(t *testing.T, what string, got source.Location, line, col, width int) {
	t.Helper()
	want := source.NewLocation(got.File, line, col, width)
	if !got.Equal(want) || got.Width != want.Width {
		t.Fatalf("%s: location %d:%d width %d, want %d:%d width %d",
			what, got.Line, got.Column, got.Width, line, col, width)
	}
}
