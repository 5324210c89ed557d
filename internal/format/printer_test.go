package format

import (
	"strings"
	"testing"

	"errcode/internal/ast"
	"errcode/internal/diag"
	"errcode/internal/lexer"
	"errcode/internal/parser"
	"errcode/internal/source"
)

func parseForFormat(t *testing.T, src string) (*source.File, *ast.Builder, ast.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("test.js", []byte(src)))
	bag := diag.NewBag(20)
	reporter := &diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(lexer.New(sf, lexer.Options{Reporter: reporter}), b, parser.Options{MaxErrors: 20, Reporter: reporter})
	if bag.HasErrors() {
		t.Fatalf("parse failed: %d diagnostics", len(bag.Items()))
	}
	return sf, b, res.File
}

func TestFormatUntouchedIsIdentity(t *testing.T) {
	sources := []string{
		"",
		"x;",
		"// only a comment\n",
		"const a = 1, b = `t${a}`;\n\nfunction f() {\n\treturn /re/g.test(a) ? a / 2 : b;\n}\n",
		"class A extends B {\n  #x = 1;\n  static { init(); }\n  get y() { return this.#x; }\n}\n",
		"import x from \"y\";\nexport default async () => { await x(); };\n",
		"label: for (const k in o) { if (!k) continue label; }",
		"no_newline_at_end()",
	}
	for _, src := range sources {
		sf, b, fid := parseForFormat(t, src)
		out, err := FormatFile(sf, b, fid)
		if err != nil {
			t.Fatalf("FormatFile(%q): %v", src, err)
		}
		if string(out) != src {
			t.Errorf("round trip changed source\n--- got ---\n%s\n--- want ---\n%s", out, src)
		}
	}
}

// wrapFirstCall оборачивает первый вызов f(...) в синтетический g(<call>).
func wrapFirstCall(b *ast.Builder, fid ast.FileID) {
	target := ast.NoExprID
	_ = ast.WalkFile(b, fid, func(id ast.ExprID) error {
		if _, ok := b.Exprs.Call(id); ok && target == ast.NoExprID {
			target = id
		}
		return nil
	})
	ex := b.Exprs
	span := ex.Get(target).Span
	orig := ex.Move(target)
	callee := ex.NewIdent(source.Span{}, b.Strings.Intern("g"))
	arg := ex.NewLiteral(source.Span{}, ast.ExprLitString, b.Strings.Intern("q\"\n"))
	call := ex.NewCall(span, callee, []ast.ExprID{orig, arg}, false)
	ex.Set(target, *ex.Get(call))
	ex.MarkSynthetic(callee)
	ex.MarkSynthetic(arg)
	ex.MarkSynthetic(target)
}

func TestFormatSyntheticRoot(t *testing.T) {
	sf, b, fid := parseForFormat(t, "a = 1;\nlet v = f(x, /* c */ y) + 2;\n")
	wrapFirstCall(b, fid)
	out, err := FormatFile(sf, b, fid)
	if err != nil {
		t.Fatal(err)
	}
	want := "a = 1;\nlet v = g(f(x, /* c */ y), \"q\\\"\\n\") + 2;\n"
	if string(out) != want {
		t.Fatalf("got\n%s\nwant\n%s", out, want)
	}
	ok, msg := CheckRoundTrip(sf, b, fid, out, 20)
	if !ok {
		t.Fatalf("CheckRoundTrip: %s", msg)
	}
}

func TestFormatRejectsUnknownSynthetic(t *testing.T) {
	sf, b, fid := parseForFormat(t, "f();")
	target := ast.NoExprID
	_ = ast.WalkFile(b, fid, func(id ast.ExprID) error {
		if _, ok := b.Exprs.Call(id); ok {
			target = id
		}
		return nil
	})
	ex := b.Exprs
	span := ex.Get(target).Span
	orig := ex.Move(target)
	seq := ex.NewSequence(span, []ast.ExprID{orig})
	ex.Set(target, *ex.Get(seq))
	ex.MarkSynthetic(target)
	if _, err := FormatFile(sf, b, fid); err == nil || !strings.Contains(err.Error(), "cannot render") {
		t.Fatalf("err = %v", err)
	}
}

func TestFormatArgErrors(t *testing.T) {
	if _, err := FormatFile(nil, nil, 0); err == nil {
		t.Fatal("nil file must fail")
	}
}

func TestQuoteString(t *testing.T) {
	tests := []struct{ in, want string }{
		{"E0000000000abc", `"E0000000000abc"`},
		{`a"b\c`, `"a\"b\\c"`},
		{"tab\tnl\ncr\r", `"tab\tnl\ncr\r"`},
		{"\x01", `"\u0001"`},
		{"ls\u2028ps\u2029", `"ls\u2028ps\u2029"`},
		{"ünï", `"ünï"`},
	}
	for _, tt := range tests {
		if got := QuoteString(tt.in); got != tt.want {
			t.Errorf("QuoteString(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestCheckRoundTripDetectsBreakage(t *testing.T) {
	sf, b, fid := parseForFormat(t, "x = 1;")
	if ok, _ := CheckRoundTrip(sf, b, fid, []byte("x = ;"), 20); ok {
		t.Fatal("broken output accepted")
	}
	if ok, _ := CheckRoundTrip(sf, b, fid, []byte("function x() {}"), 20); ok {
		t.Fatal("different statement kinds accepted")
	}
}
