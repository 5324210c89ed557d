package format

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"errcode/internal/ast"
	"errcode/internal/diag"
	"errcode/internal/lexer"
	"errcode/internal/parser"
	"errcode/internal/source"

	"fortio.org/safecast"
)

type printer struct {
	builder *ast.Builder
	file    *ast.File
	writer  *Writer
	// roots: синтетические узлы с непустым span, по (Start asc, End desc)
	roots []ast.ExprID
}

// FormatFile returns the text of file fid: the source of sf with every
// rewritten expression replaced by its synthetic rendering. A file without
// rewrites prints back byte-for-byte.
func FormatFile(sf *source.File, b *ast.Builder, fid ast.FileID) ([]byte, error) {
	if sf == nil {
		return nil, errors.New("format: nil source file")
	}
	if b == nil {
		return nil, errors.New("format: nil builder")
	}
	if !fid.IsValid() {
		return nil, errors.New("format: invalid file id")
	}
	file := b.Files.Get(fid)
	if file == nil {
		return nil, errors.New("format: missing ast file")
	}
	end, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}

	pr := printer{
		builder: b,
		file:    file,
		writer:  NewWriter(sf),
	}
	if err := pr.collectRoots(sf.ID); err != nil {
		return nil, err
	}
	if err := pr.printRange(source.Span{File: sf.ID, Start: 0, End: end}, false); err != nil {
		return nil, err
	}
	return pr.writer.Bytes(), nil
}

func (p *printer) collectRoots(fileID source.FileID) error {
	exprs := p.builder.Exprs
	for _, st := range p.file.Stmts {
		err := ast.WalkStmt(p.builder, st, func(id ast.ExprID) error {
			e := exprs.Get(id)
			if e.Synthetic() && !e.Span.Empty() && e.Span.File == fileID {
				p.roots = append(p.roots, id)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	slices.SortStableFunc(p.roots, func(a, b ast.ExprID) int {
		sa, sb := exprs.Get(a).Span, exprs.Get(b).Span
		if c := cmp.Compare(sa.Start, sb.Start); c != 0 {
			return c
		}
		return cmp.Compare(sb.End, sa.End)
	})
	return nil
}

// printRange копирует исходник в пределах rng, подставляя синтетические
// корни, лежащие внутри. inner=true, rng это span раскрываемого узла, и
// корень с тем же span (сам раскрываемый узел) пропускается.
func (p *printer) printRange(rng source.Span, inner bool) error {
	pos := rng.Start
	for _, id := range p.roots {
		sp := p.builder.Exprs.Get(id).Span
		if sp.Start < pos || sp.End > rng.End {
			continue
		}
		if inner && sp.Start == rng.Start && sp.End == rng.End {
			continue
		}
		p.writer.CopyRange(int(pos), int(sp.Start))
		if err := p.printExpr(id); err != nil {
			return err
		}
		pos = sp.End
	}
	p.writer.CopyRange(int(pos), int(rng.End))
	return nil
}

// CheckRoundTrip re-parses formatted output of file fid and ensures it is
// syntactically valid and keeps the top-level statement kinds.
func CheckRoundTrip(sf *source.File, b *ast.Builder, fid ast.FileID, formatted []byte, maxDiag int) (ok bool, msg string) {
	fs := source.NewFileSetWithBase("")
	rebuilt := fs.Get(fs.AddVirtual(sf.Path, formatted))
	bag := diag.NewBag(maxDiag)
	newBuilder, newFileID := parseOnce(rebuilt, bag)
	if newBuilder.Files.Get(newFileID) == nil || bag.HasErrors() {
		return false, "fmt-check: reparse failed"
	}
	if !sameTopStmtKinds(b, fid, newBuilder, newFileID) {
		return false, "fmt-check: top-level statement kinds differ after round-trip"
	}
	return true, "fmt-check: OK"
}

func parseOnce(sf *source.File, bag *diag.Bag) (*ast.Builder, ast.FileID) {
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(sf, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	opts := parser.Options{Reporter: reporter, MaxErrors: uint(bag.Cap())}
	res := parser.ParseFile(lx, builder, opts)
	return builder, res.File
}

func sameTopStmtKinds(b1 *ast.Builder, f1 ast.FileID, b2 *ast.Builder, f2 ast.FileID) bool {
	file1 := b1.Files.Get(f1)
	file2 := b2.Files.Get(f2)
	if file1 == nil || file2 == nil {
		return false
	}
	getKinds := func(b *ast.Builder, f *ast.File) []ast.StmtKind {
		kinds := make([]ast.StmtKind, 0, len(f.Stmts))
		for _, id := range f.Stmts {
			if st := b.Stmts.Get(id); st != nil {
				kinds = append(kinds, st.Kind)
			}
		}
		return kinds
	}
	return slices.Equal(getKinds(b1, file1), getKinds(b2, file2))
}
