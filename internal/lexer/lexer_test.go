package lexer_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"errcode/internal/diag"
	"errcode/internal/lexer"
	"errcode/internal/source"
	"errcode/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func (r *testReporter) HasCode(code diag.Code) bool {
	for _, d := range r.diagnostics {
		if d.Code == code {
			return true
		}
	}
	return false
}

func (r *testReporter) ErrorMessages() []string {
	messages := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		messages = append(messages, fmt.Sprintf("[%s] %s: %s", d.Code.ID(), d.Severity, d.Message))
	}
	return messages
}

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.js", []byte(input))
	reporter := &testReporter{}
	return lexer.New(fs.Get(id), lexer.Options{Reporter: reporter}), reporter
}

func collectAllTokens(lx *lexer.Lexer) []token.Token {
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens
}

// expectTokens проверяет последовательность токенов (без EOF)
func expectTokens(t *testing.T, input string, expected []token.Kind) {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	tokens := collectAllTokens(lx)
	tokens = tokens[:len(tokens)-1]

	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d\nInput: %q\nTokens: %v\nErrors: %v",
			len(expected), len(tokens), input, tokensToString(tokens), reporter.ErrorMessages())
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("Token %d: expected %v, got %v (text: %q)", i, expected[i], tok.Kind, tok.Text)
		}
	}
}

func expectSingleToken(t *testing.T, input string, expectedKind token.Kind, expectedText string) {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	tok := lx.Next()
	if tok.Kind != expectedKind {
		t.Errorf("Expected kind %v, got %v (errors: %v)", expectedKind, tok.Kind, reporter.ErrorMessages())
	}
	if tok.Text != expectedText {
		t.Errorf("Expected text %q, got %q", expectedText, tok.Text)
	}
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ====== идентификаторы и ключевые слова ======

func TestIdentifiers(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"foo", token.Ident},
		{"_bar", token.Ident},
		{"$el", token.Ident},
		{"x123", token.Ident},
		{"Error", token.Ident},
		{"переменная", token.Ident},
		{"async", token.Ident},
		{"of", token.Ident},
		{"new", token.KwNew},
		{"throw", token.KwThrow},
		{"typeof", token.KwTypeof},
		{"this", token.KwThis},
		{`\u0045rror`, token.Ident},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, tt.kind, tt.input)
		})
	}
}

func TestIdentName(t *testing.T) {
	tests := map[string]string{
		"Error":      "Error",
		`\u0045rror`: "Error",
		`\u{45}rror`: "Error",
		`\u0061bc`:   "abc",
	}
	for in, want := range tests {
		if got := lexer.IdentName(in); got != want {
			t.Errorf("IdentName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPrivateName(t *testing.T) {
	expectTokens(t, "this.#count", []token.Kind{token.KwThis, token.Dot, token.PrivateName})
	expectSingleToken(t, "#x", token.PrivateName, "#x")
}

// ====== числа ======

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"0", token.NumberLit},
		{"123", token.NumberLit},
		{"1_000_000", token.NumberLit},
		{"0x1F", token.NumberLit},
		{"0b1010", token.NumberLit},
		{"0o755", token.NumberLit},
		{"0777", token.NumberLit},
		{"3.14", token.NumberLit},
		{".5", token.NumberLit},
		{"1e10", token.NumberLit},
		{"2.5E-3", token.NumberLit},
		{"10n", token.BigIntLit},
		{"0xFFn", token.BigIntLit},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, tt.kind, tt.input)
		})
	}
}

func TestNumbers_Invalid(t *testing.T) {
	for _, input := range []string{"3in", "1e", "0x"} {
		lx, reporter := makeTestLexer(input)
		collectAllTokens(lx)
		if !reporter.HasCode(diag.LexBadNumber) {
			t.Errorf("%q: expected LexBadNumber, got %v", input, reporter.ErrorMessages())
		}
	}
}

func TestNumbers_MemberAccess(t *testing.T) {
	// 1..toString(), число "1." и точка
	expectTokens(t, "1..toString()", []token.Kind{
		token.NumberLit, token.Dot, token.Ident, token.LParen, token.RParen,
	})
}

// ====== строки ======

func TestStrings(t *testing.T) {
	tests := []struct {
		input string
		value string
	}{
		{`"hello"`, "hello"},
		{`'single'`, "single"},
		{`"it's"`, "it's"},
		{`'say "hi"'`, `say "hi"`},
		{`"a\nb"`, "a\nb"},
		{`"tab\there"`, "tab\there"},
		{`"\x41B\u{43}"`, "ABC"},
		{`"\uD83D\uDE00"`, "\U0001F600"},
		{`"\uD800"`, "\uFFFD"},
		{`"\0"`, "\x00"},
		{`"\101"`, "A"},
		{`"\q"`, "q"},
		{"\"line\\\ncont\"", "linecont"},
		{`"Failed to fetch user %s: %s"`, "Failed to fetch user %s: %s"},
		{`"привет"`, "привет"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lx, reporter := makeTestLexer(tt.input)
			tok := lx.Next()
			if tok.Kind != token.StringLit {
				t.Fatalf("expected StringLit, got %v (%v)", tok.Kind, reporter.ErrorMessages())
			}
			got, err := lexer.Unquote(tok.Text)
			if err != nil {
				t.Fatalf("Unquote(%q): %v", tok.Text, err)
			}
			if got != tt.value {
				t.Errorf("Unquote(%q) = %q, want %q", tok.Text, got, tt.value)
			}
		})
	}
}

func TestUnquote_BadEscape(t *testing.T) {
	for _, in := range []string{`"\x4"`, `"\u12"`, `"\u{110000}"`} {
		if _, err := lexer.Unquote(in); !errors.Is(err, lexer.ErrBadEscape) {
			t.Errorf("Unquote(%q): expected ErrBadEscape, got %v", in, err)
		}
	}
}

func TestString_Unterminated(t *testing.T) {
	for _, input := range []string{`"abc`, "'abc\nx'"} {
		lx, reporter := makeTestLexer(input)
		tok := lx.Next()
		if tok.Kind != token.Invalid {
			t.Errorf("%q: expected Invalid, got %v", input, tok.Kind)
		}
		if !reporter.HasCode(diag.LexUnterminatedString) {
			t.Errorf("%q: expected LexUnterminatedString, got %v", input, reporter.ErrorMessages())
		}
	}
}

// ====== шаблоны ======

func TestTemplate_NoSubstitution(t *testing.T) {
	expectSingleToken(t, "`plain text`", token.TemplateFull, "`plain text`")
	if got := lexer.TemplateRaw("`a\\nb`"); got != `a\nb` {
		t.Errorf("TemplateRaw = %q", got)
	}
}

func TestTemplateRaw_NormalizesLineTerminators(t *testing.T) {
	if got := lexer.TemplateRaw("`a\r\nb\rc${"); got != "a\nb\nc" {
		t.Errorf("TemplateRaw = %q", got)
	}
	if got, ok := lexer.TemplateCooked("`x\\\r\ny`"); !ok || got != "xy" {
		t.Errorf("TemplateCooked line continuation = %q, %v", got, ok)
	}
}

func TestTemplate_WithSubstitutions(t *testing.T) {
	lx, reporter := makeTestLexer("`Request ${a} and ${b}!`")
	head := lx.Next()
	if head.Kind != token.TemplateHead || lexer.TemplateRaw(head.Text) != "Request " {
		t.Fatalf("head: %v %q", head.Kind, head.Text)
	}
	if tok := lx.Next(); tok.Kind != token.Ident || tok.Text != "a" {
		t.Fatalf("expected ident a, got %v", tok.Kind)
	}
	rb := lx.Next()
	if rb.Kind != token.RBrace {
		t.Fatalf("expected '}', got %v", rb.Kind)
	}
	mid := lx.ReScanTemplate(rb)
	if mid.Kind != token.TemplateMiddle || lexer.TemplateRaw(mid.Text) != " and " {
		t.Fatalf("middle: %v %q", mid.Kind, mid.Text)
	}
	lx.Next() // b
	tail := lx.ReScanTemplate(lx.Next())
	if tail.Kind != token.TemplateTail || lexer.TemplateRaw(tail.Text) != "!" {
		t.Fatalf("tail: %v %q", tail.Kind, tail.Text)
	}
	if tok := lx.Next(); tok.Kind != token.EOF {
		t.Fatalf("expected EOF, got %v", tok.Kind)
	}
	if len(reporter.diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", reporter.ErrorMessages())
	}
}

func TestTemplateCooked(t *testing.T) {
	if v, ok := lexer.TemplateCooked("`a\\tb${"); !ok || v != "a\tb" {
		t.Errorf("TemplateCooked = %q, %v", v, ok)
	}
	if _, ok := lexer.TemplateCooked("`\\01`"); ok {
		t.Error("octal escape in template must not cook")
	}
}

func TestTemplate_Unterminated(t *testing.T) {
	lx, reporter := makeTestLexer("`abc")
	lx.Next()
	if !reporter.HasCode(diag.LexUnterminatedTemplate) {
		t.Errorf("expected LexUnterminatedTemplate, got %v", reporter.ErrorMessages())
	}
}

// ====== регулярные выражения ======

func TestReScanRegExp(t *testing.T) {
	lx, reporter := makeTestLexer("/a[/]b\\/c/gi.test(x)")
	slash := lx.Next()
	if slash.Kind != token.Slash {
		t.Fatalf("expected '/', got %v", slash.Kind)
	}
	re := lx.ReScanRegExp(slash)
	if re.Kind != token.RegExpLit || re.Text != "/a[/]b\\/c/gi" {
		t.Fatalf("regexp: %v %q (%v)", re.Kind, re.Text, reporter.ErrorMessages())
	}
	if tok := lx.Next(); tok.Kind != token.Dot {
		t.Fatalf("expected '.', got %v", tok.Kind)
	}
}

func TestReScanRegExp_AfterPeek(t *testing.T) {
	lx, _ := makeTestLexer("/=x/")
	slash := lx.Next()
	lx.Peek()
	re := lx.ReScanRegExp(slash)
	if re.Kind != token.RegExpLit || re.Text != "/=x/" {
		t.Fatalf("regexp: %v %q", re.Kind, re.Text)
	}
}

func TestRegExp_Unterminated(t *testing.T) {
	lx, reporter := makeTestLexer("/abc\n")
	re := lx.ReScanRegExp(lx.Next())
	if re.Kind != token.Invalid || !reporter.HasCode(diag.LexUnterminatedRegExp) {
		t.Fatalf("expected unterminated regexp, got %v %v", re.Kind, reporter.ErrorMessages())
	}
}

// ====== операторы ======

func TestOperators_Greedy(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"===", token.EqEqEq},
		{"!==", token.BangEqEq},
		{">>>=", token.UShrAssign},
		{">>>", token.UShr},
		{"**=", token.StarStarAssign},
		{"??=", token.QuestionQuestionAssign},
		{"?.", token.QuestionDot},
		{"...", token.DotDotDot},
		{"=>", token.Arrow},
		{"&&=", token.AndAndAssign},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, tt.kind, tt.input)
		})
	}
}

func TestOptionalChainBeforeDigit(t *testing.T) {
	expectTokens(t, "a?.5:b", []token.Kind{
		token.Ident, token.Question, token.NumberLit, token.Colon, token.Ident,
	})
}

func TestUnknownCharacter(t *testing.T) {
	lx, reporter := makeTestLexer("a @ b")
	tokens := collectAllTokens(lx)
	if tokens[1].Kind != token.Invalid || !reporter.HasCode(diag.LexUnknownChar) {
		t.Fatalf("expected Invalid token with LexUnknownChar, got %v", tokensToString(tokens))
	}
}

// ====== trivia ======

func TestTrivia_LeadingAndNewline(t *testing.T) {
	lx, _ := makeTestLexer("a // comment\n  /* block\n */ b /* inline */ c")
	a := lx.Next()
	if a.NewlineBefore() || len(a.Leading) != 0 {
		t.Fatalf("a: unexpected leading %v", a.Leading)
	}
	b := lx.Next()
	if !b.NewlineBefore() {
		t.Fatal("b must have a newline before")
	}
	kinds := make([]token.TriviaKind, 0, len(b.Leading))
	for _, tr := range b.Leading {
		kinds = append(kinds, tr.Kind)
	}
	want := []token.TriviaKind{
		token.TriviaSpace, token.TriviaLineComment, token.TriviaNewline,
		token.TriviaSpace, token.TriviaBlockComment, token.TriviaSpace,
	}
	if fmt.Sprint(kinds) != fmt.Sprint(want) {
		t.Fatalf("b leading kinds = %v, want %v", kinds, want)
	}
	c := lx.Next()
	if c.NewlineBefore() {
		t.Fatal("c: single-line block comment is not a newline")
	}
}

func TestTrivia_Hashbang(t *testing.T) {
	lx, _ := makeTestLexer("#!/usr/bin/env node\nx")
	tok := lx.Next()
	if tok.Kind != token.Ident || tok.Leading[0].Kind != token.TriviaHashbang {
		t.Fatalf("expected ident after hashbang, got %v %v", tok.Kind, tok.Leading)
	}
}

func TestTrivia_UnterminatedBlockComment(t *testing.T) {
	lx, reporter := makeTestLexer("/* never closed")
	if tok := lx.Next(); tok.Kind != token.EOF {
		t.Fatalf("expected EOF, got %v", tok.Kind)
	}
	if !reporter.HasCode(diag.LexUnterminatedBlockComment) {
		t.Fatalf("expected LexUnterminatedBlockComment, got %v", reporter.ErrorMessages())
	}
}

// ====== поток ======

func TestLexer_ThrowNewError(t *testing.T) {
	expectTokens(t, `throw new Error("Request failed: " + res.status);`, []token.Kind{
		token.KwThrow, token.KwNew, token.Ident, token.LParen, token.StringLit,
		token.Plus, token.Ident, token.Dot, token.Ident, token.RParen, token.Semicolon,
	})
}

func TestLexer_PeekBehavior(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("peek: %q", p.Text)
	}
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("second peek moved the lexer: %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("next: %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("next: %q", n.Text)
	}
}

func TestLexer_SaveRestoreMute(t *testing.T) {
	lx, reporter := makeTestLexer("(a, b) => @")
	lx.Next()
	st := lx.Save()
	unmute := lx.Mute()
	for tok := lx.Next(); tok.Kind != token.EOF; tok = lx.Next() {
	}
	unmute()
	if len(reporter.diagnostics) != 0 {
		t.Fatalf("muted lexer reported: %v", reporter.ErrorMessages())
	}
	lx.Restore(st)
	if tok := lx.Next(); tok.Text != "a" {
		t.Fatalf("after restore expected a, got %q", tok.Text)
	}
}

func TestLexer_EOFIsSticky(t *testing.T) {
	lx, _ := makeTestLexer("  ")
	for range 3 {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("expected EOF, got %v", tok.Kind)
		}
	}
}
