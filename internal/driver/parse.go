package driver

import (
	"errcode/internal/ast"
	"errcode/internal/diag"
	"errcode/internal/errcode"
	"errcode/internal/source"
)

// ParseResult is a parsed file with its error constructions.
type ParseResult struct {
	FileSet       *source.FileSet
	File          *source.File
	Bag           *diag.Bag
	Builder       *ast.Builder
	FileID        ast.FileID
	Constructions []errcode.Construction
}

// Parse parses path without rewriting anything. Constructions are listed
// only when the file parsed without errors.
func Parse(path string, maxDiag int) (*ParseResult, error) {
	fs, sf, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	bag := diag.NewBag(maxDiagnostics(maxDiag))
	builder, fid, err := parseInto(sf, bag)
	if err != nil {
		return nil, err
	}
	res := &ParseResult{FileSet: fs, File: sf, Bag: bag, Builder: builder, FileID: fid}
	if !bag.HasErrors() {
		res.Constructions = errcode.Scan(builder, fid)
	}
	return res, nil
}
