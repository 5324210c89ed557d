package errcode_test

import (
	"testing"

	"errcode/internal/ast"
	"errcode/internal/diag"
	"errcode/internal/errcode"
	"errcode/internal/lexer"
	"errcode/internal/parser"
	"errcode/internal/source"
)

type unit struct {
	sf   *source.File
	b    *ast.Builder
	file ast.FileID
}

func parseUnit(t *testing.T, path, src string) unit {
	t.Helper()
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual(path, []byte(src)))
	bag := diag.NewBag(50)
	reporter := &diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(lexer.New(sf, lexer.Options{Reporter: reporter}), b, parser.Options{MaxErrors: 50, Reporter: reporter})
	if bag.HasErrors() {
		for _, d := range bag.Items() {
			t.Logf("[%s] %s", d.Code.ID(), d.Message)
		}
		t.Fatalf("parse %s failed", path)
	}
	return unit{sf: sf, b: b, file: res.File}
}

// firstArg возвращает первый аргумент первого new-выражения в файле.
func firstArg(t *testing.T, u unit) ast.ExprID {
	t.Helper()
	found := ast.NoExprID
	_ = ast.WalkFile(u.b, u.file, func(id ast.ExprID) error {
		if n, ok := u.b.Exprs.New(id); ok && found == ast.NoExprID && len(n.Args) > 0 {
			found = n.Args[0]
		}
		return nil
	})
	if found == ast.NoExprID {
		t.Fatalf("no new expression with arguments")
	}
	return found
}

// recordingGateway запоминает все вызовы Persist.
type recordingGateway struct {
	calls []string
	fail  error
}

func (g *recordingGateway) Persist(hash string, _ errcode.Record) error {
	g.calls = append(g.calls, hash)
	return g.fail
}
