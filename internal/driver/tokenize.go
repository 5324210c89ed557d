package driver

import (
	"fmt"

	"errcode/internal/diag"
	"errcode/internal/lexer"
	"errcode/internal/source"
	"errcode/internal/token"
)

// TokenizeResult is the token stream of one file.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes path up to and including EOF. Lexical errors are left in
// the bag; only I/O failures are returned.
func Tokenize(path string, maxDiag int) (*TokenizeResult, error) {
	fs, sf, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	bag := diag.NewBag(maxDiagnostics(maxDiag))
	lx := lexer.New(sf, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return &TokenizeResult{FileSet: fs, File: sf, Tokens: toks, Bag: bag}, nil
}

// loadFile reads path with the BOM stripped and line endings kept.
func loadFile(path string) (*source.FileSet, *source.File, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return fs, fs.Get(id), nil
}
