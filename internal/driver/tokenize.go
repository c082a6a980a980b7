package driver

import (
	"bcplc/internal/diag"
	"bcplc/internal/lexer"
	"bcplc/internal/source"
	"bcplc/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes a whole file. Lexer errors are collected in the bag and do
// not stop tokenization.
func Tokenize(path string, maxDiagnostics int, keepTrivia bool) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{
		Reporter:   diag.BagReporter{Bag: bag},
		KeepTrivia: keepTrivia,
	})
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  lx.All(),
		Bag:     bag,
	}, nil
}
