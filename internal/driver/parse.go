package driver

import (
	"context"

	"bcplc/internal/ast"
	"bcplc/internal/diag"
	"bcplc/internal/parser"
	"bcplc/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Program *ast.Program
	Result  parser.Result
}

// Diagnostics returns the fatal diagnostic, if any, followed by the warnings.
func (r *ParseResult) Diagnostics() []*diag.Diagnostic {
	return r.Result.Diagnostics()
}

// Parse loads and parses a single file into a fresh program.
func Parse(ctx context.Context, filePath string, maxWarnings int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	prog := ast.NewProgram()
	res := parser.ParseFile(ctx, fs, fileID, parser.Options{
		Program:     prog,
		MaxWarnings: maxWarnings,
	})
	return &ParseResult{
		FileSet: fs,
		File:    fs.Get(fileID),
		Program: prog,
		Result:  res,
	}, nil
}
