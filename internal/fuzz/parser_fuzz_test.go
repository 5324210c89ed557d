package fuzztests

import (
	"context"
	"testing"
	"time"

	"errcode/internal/ast"
	"errcode/internal/diag"
	"errcode/internal/lexer"
	"errcode/internal/parser"
	"errcode/internal/source"
	"errcode/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

type parsed struct {
	file    *source.File
	builder *ast.Builder
	fileID  ast.FileID
	bag     *diag.Bag
}

func parseInput(input []byte) parsed {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("fuzz.js", input))

	bag := diag.NewBag(128)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})

	builder := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(lx, builder, parser.Options{
		Reporter:  reporter,
		MaxErrors: 128,
	})
	return parsed{file: file, builder: builder, fileID: res.File, bag: bag}
}

func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		p := parseInput(clampInput(input))
		if p.bag.HasErrors() {
			return
		}
		// спаны чистого разбора обязаны быть согласованы
		if err := testkit.CheckSpanInvariants(p.builder, p.fileID, p.file); err != nil {
			t.Fatalf("span invariants: %v\ninput: %q", err, truncateForLog(input, 200))
		}
	})
}

// FuzzParserNoHang tests that the parser doesn't hang on any input.
// It uses a timeout to detect infinite loops in error recovery.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	f.Add([]byte("function f() { let x = 1\nlet y = 2 }"))
	f.Add([]byte("if (a) { b\n} else"))
	f.Add([]byte("for (let i = 0 i < 10 i++) {}"))
	f.Add([]byte("{{{{{{{{"))
	f.Add([]byte("class { #"))
	f.Add([]byte("(a, b) => { return"))
	f.Add([]byte("x = `${`${`"))
	f.Add([]byte("switch (x) { case 1: default: case"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = parseInput(input)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
