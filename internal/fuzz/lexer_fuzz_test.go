package fuzztests

import (
	"testing"

	"errcode/internal/diag"
	"errcode/internal/lexer"
	"errcode/internal/source"
	"errcode/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.js", input))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})
		limit := 2*len(input) + 8
		// лексер обязан продвигаться, иначе зацикливание
		for i := 0; ; i++ {
			tok := lx.Next()
			if tok.Kind == token.EOF {
				break
			}
			if int(tok.Span.End) > len(input) || tok.Span.Start > tok.Span.End {
				t.Fatalf("token %d has bad span %d..%d", i, tok.Span.Start, tok.Span.End)
			}
			if i > limit {
				t.Fatalf("lexer does not advance on %q", truncateForLog(input, 200))
			}
		}
	})
}
