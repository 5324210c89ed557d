package parser

import (
	"fmt"
	"strings"
	"testing"

	"errcode/internal/ast"
	"errcode/internal/diag"
	"errcode/internal/lexer"
	"errcode/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func parseSource(t *testing.T, input string) (*ast.Builder, ast.FileID, *diag.Bag) {
	t.Helper()

	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.js", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(100)
	reporter := &diag.BagReporter{Bag: bag}

	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{}, nil)

	result := ParseFile(lx, builder, Options{MaxErrors: 100, Reporter: reporter})
	return builder, result.File, bag
}

// mustParse разбирает input и падает на любой диагностике.
func mustParse(t *testing.T, input string) (*ast.Builder, *ast.File) {
	t.Helper()
	b, fileID, bag := parseSource(t, input)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics for %q: %s", input, diagnosticsSummary(bag))
	}
	return b, b.Files.Get(fileID)
}

// parseExprInput разбирает одну инструкцию-выражение и возвращает её выражение.
func parseExprInput(t *testing.T, input string) (*ast.Builder, ast.ExprID) {
	t.Helper()
	b, file := mustParse(t, input)
	if len(file.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(file.Stmts))
	}
	st, ok := b.Stmts.Expr(file.Stmts[0])
	if !ok {
		t.Fatalf("expected expression statement, got %v", b.Stmts.Get(file.Stmts[0]).Kind)
	}
	return b, st.Expr
}

// collectKinds: виды всех выражений в порядке обхода.
func collectKinds(t *testing.T, b *ast.Builder, file *ast.File) []ast.ExprKind {
	t.Helper()
	var kinds []ast.ExprKind
	for _, st := range file.Stmts {
		err := ast.WalkStmt(b, st, func(id ast.ExprID) error {
			kinds = append(kinds, b.Exprs.Get(id).Kind)
			return nil
		})
		if err != nil {
			t.Fatalf("walk: %v", err)
		}
	}
	return kinds
}

func countKind(kinds []ast.ExprKind, want ast.ExprKind) int {
	n := 0
	for _, k := range kinds {
		if k == want {
			n++
		}
	}
	return n
}

func spanText(input string, sp source.Span) string {
	return input[sp.Start:sp.End]
}

func parseSourceLimited(t *testing.T, input string, maxErrors uint) (*ast.Builder, ast.FileID, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.js", []byte(input)))
	bag := diag.NewBag(100)
	reporter := &diag.BagReporter{Bag: bag}
	builder := ast.NewBuilder(ast.Hints{}, nil)
	result := ParseFile(lexer.New(file, lexer.Options{Reporter: reporter}), builder, Options{MaxErrors: maxErrors, Reporter: reporter})
	return builder, result.File, bag
}
