package errcode

import (
	"errcode/internal/ast"
	"errcode/internal/source"
)

// Construction is one new Error(msg, ...) found by Scan.
type Construction struct {
	Span    source.Span
	Message string
	// Wrapped is set when the construction already carries a code.
	Wrapped bool
}

// Scan lists error constructions in the order RewriteFile visits them,
// without touching the tree or counting occurrences.
func Scan(b *ast.Builder, fid ast.FileID) []Construction {
	r := &Rewriter{b: b}
	wrapped := r.collectWrapped(fid)
	var out []Construction
	_ = ast.WalkFile(b, fid, func(id ast.ExprID) error {
		if !IsErrorConstruction(b, id) {
			return nil
		}
		_, done := wrapped[id]
		out = append(out, Construction{
			Span:    b.Exprs.Get(id).Span,
			Message: r.message(id),
			Wrapped: done,
		})
		return nil
	})
	return out
}
