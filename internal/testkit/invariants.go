// Package testkit holds checks shared by parser, rewriter and fuzz tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"errcode/internal/ast"
	"errcode/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) file.Span lies within the file content and points at sf
// 2) every top-level statement span is non-empty and inside file.Span
// 3) every source expression span is inside file.Span; synthetic nodes are skipped
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	if f.Span.End < f.Span.Start {
		return fmt.Errorf("file span is inverted: %v", f.Span)
	}
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", f.Span.End, lenContent)
	}

	inside := func(sp source.Span) error {
		if sp.File != sf.ID {
			return fmt.Errorf("span file mismatch: got=%d want=%d", sp.File, sf.ID)
		}
		if sp.Start < f.Span.Start || sp.End > f.Span.End || sp.End < sp.Start {
			return fmt.Errorf("span %v is outside file span %v", sp, f.Span)
		}
		return nil
	}

	for _, id := range f.Stmts {
		st := b.Stmts.Get(id)
		if st == nil {
			return fmt.Errorf("nil statement for id=%d", id)
		}
		if st.Span.Empty() {
			return fmt.Errorf("empty statement span: %v", st.Span)
		}
		if err := inside(st.Span); err != nil {
			return fmt.Errorf("statement %d: %w", id, err)
		}
	}

	return ast.WalkFile(b, fileID, func(id ast.ExprID) error {
		ex := b.Exprs.Get(id)
		if ex == nil {
			return fmt.Errorf("nil expression for id=%d", id)
		}
		if ex.Synthetic() {
			return nil
		}
		if err := inside(ex.Span); err != nil {
			return fmt.Errorf("expression %d (%v): %w", id, ex.Kind, err)
		}
		return nil
	})
}
