package errcode_test

import (
	"errors"
	"strings"
	"testing"

	"errcode/internal/ast"
	"errcode/internal/errcode"
	"errcode/internal/format"
	"errcode/internal/trace"
)

const fetchFixture = `async function fetchUser(userId) {
  const response = await fetch(` + "`/api/users/${userId}`" + `);
  if (!response.ok) {
    throw new Error(` + "`Failed to fetch user ${userId}: ${response.statusText}`" + `);
  }
  return response.json();
}

function request(status) {
  throw new Error(` + "`Request failed: ${status}`" + `);
}
`

// rewrite прогоняет проход по src и возвращает напечатанный результат.
func rewrite(t *testing.T, path, src string, gw errcode.Gateway) (string, errcode.Stats) {
	t.Helper()
	u := parseUnit(t, path, src)
	gen := errcode.NewGenerator(testCommit, path, gw)
	stats, err := errcode.NewRewriter(u.b, gen, errcode.RewriteOptions{}).RewriteFile(u.file)
	if err != nil {
		t.Fatalf("RewriteFile: %v", err)
	}
	out, err := format.FormatFile(u.sf, u.b, u.file)
	if err != nil {
		t.Fatalf("FormatFile: %v", err)
	}
	return string(out), stats
}

func TestRewriteFixture(t *testing.T) {
	out, stats := rewrite(t, "/test/file.js", fetchFixture, nil)

	want := strings.Replace(fetchFixture,
		"throw new Error(`Failed to fetch user ${userId}: ${response.statusText}`);",
		"throw Object.assign(new Error(`Failed to fetch user ${userId}: ${response.statusText}`), { __NEXT_ERROR_CODE: \"E000000000026c63d53d605f848\" });", 1)
	want = strings.Replace(want,
		"throw new Error(`Request failed: ${status}`);",
		"throw Object.assign(new Error(`Request failed: ${status}`), { __NEXT_ERROR_CODE: \"E0000000000a5151f4ce82c5c79\" });", 1)
	if out != want {
		t.Fatalf("output mismatch\n--- got ---\n%s\n--- want ---\n%s", out, want)
	}
	if len(stats.Sites) != 2 || stats.Skipped != 0 {
		t.Fatalf("stats = %+v", stats)
	}
	if stats.Sites[0].Record.ErrorMessage != "Failed to fetch user %s: %s" {
		t.Errorf("first template = %q", stats.Sites[0].Record.ErrorMessage)
	}
}

func TestRewriteCases(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "repeated_message",
			src:  "throw new Error(\"boom\");\nthrow new Error(\"boom\");\n",
			want: "throw Object.assign(new Error(\"boom\"), { __NEXT_ERROR_CODE: \"E000000000045c46d49f4b579e6\" });\n" +
				"throw Object.assign(new Error(\"boom\"), { __NEXT_ERROR_CODE: \"E0000000000f744adeda6c053da\" });\n",
		},
		{
			name: "concat_and_literal",
			src:  "f(new Error(\"x\" + y), new Error('y'));",
			want: "f(Object.assign(new Error(\"x\" + y), { __NEXT_ERROR_CODE: \"E0000000000423833da2e1d1ddc\" }), " +
				"Object.assign(new Error('y'), { __NEXT_ERROR_CODE: \"E000000000090637b675d00c4b9\" }));",
		},
		{
			name: "nested",
			src:  "throw new Error(new Error(\"boom\"));",
			want: "throw Object.assign(new Error(Object.assign(new Error(\"boom\"), { __NEXT_ERROR_CODE: \"E000000000045c46d49f4b579e6\" })), " +
				"{ __NEXT_ERROR_CODE: \"E000000000097befd87373e55b4\" });",
		},
		{
			name: "extra_arguments_kept",
			src:  "throw new Error(\"boom\", { cause: err });",
			want: "throw Object.assign(new Error(\"boom\", { cause: err }), { __NEXT_ERROR_CODE: \"E000000000045c46d49f4b579e6\" });",
		},
		{
			name: "spread_argument",
			src:  "new Error(...args);",
			want: "Object.assign(new Error(...args), { __NEXT_ERROR_CODE: \"E000000000097befd87373e55b4\" });",
		},
		{
			name: "comments_preserved",
			src:  "// head\nconst e = /* why */ new Error(\"boom\"); // tail\n",
			want: "// head\nconst e = /* why */ Object.assign(new Error(\"boom\"), { __NEXT_ERROR_CODE: \"E000000000045c46d49f4b579e6\" }); // tail\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := rewrite(t, "src/a.js", tt.src, nil)
			if got != tt.want {
				t.Errorf("got\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestRewriteIgnoresOtherShapes(t *testing.T) {
	src := strings.Join([]string{
		`new Error();`,
		`new Error;`,
		`Error("call, not construction");`,
		`new TypeError("other class");`,
		`new window.Error("member callee");`,
		`new errors.Error("x");`,
		`const s = "new Error('in a string')";`,
		"const t = `new Error(\"in a template\")`;",
		`// new Error("in a comment")`,
		``,
	}, "\n")
	got, stats := rewrite(t, "src/a.js", src, nil)
	if got != src {
		t.Fatalf("source changed:\n%s", got)
	}
	if len(stats.Sites) != 0 {
		t.Fatalf("unexpected sites %+v", stats.Sites)
	}
}

func TestRewriteIsIdempotent(t *testing.T) {
	once, _ := rewrite(t, "/test/file.js", fetchFixture, nil)
	gw := &recordingGateway{}
	twice, stats := rewrite(t, "/test/file.js", once, gw)
	if twice != once {
		t.Fatalf("second run changed output:\n%s", twice)
	}
	if len(stats.Sites) != 0 || stats.Skipped != 2 {
		t.Fatalf("stats = %+v", stats)
	}
	if len(gw.calls) != 0 {
		t.Fatalf("gateway called for already wrapped sites: %v", gw.calls)
	}
}

func TestRewriteKeepsCountsAcrossWrapped(t *testing.T) {
	// второе вхождение добавлено после первого прогона: должно получить #2
	src := "throw Object.assign(new Error(\"boom\"), { __NEXT_ERROR_CODE: \"E000000000045c46d49f4b579e6\" });\n" +
		"throw new Error(\"boom\");\n"
	got, stats := rewrite(t, "src/a.js", src, nil)
	if len(stats.Sites) != 1 || stats.Sites[0].Code != "E0000000000f744adeda6c053da" {
		t.Fatalf("stats = %+v", stats)
	}
	if !strings.HasSuffix(got, "throw Object.assign(new Error(\"boom\"), { __NEXT_ERROR_CODE: \"E0000000000f744adeda6c053da\" });\n") {
		t.Fatalf("output:\n%s", got)
	}
}

func TestRewriteAbortsOnGatewayError(t *testing.T) {
	fail := errcode.RegistryMissing("45c46d49f4b579e6", "error_codes/45c46d49f4b579e6.json", "error_codes")
	gw := &recordingGateway{fail: fail}
	u := parseUnit(t, "src/a.js", "throw new Error(\"boom\");\nthrow new Error(\"bang\");\n")
	gen := errcode.NewGenerator(testCommit, "src/a.js", gw)
	stats, err := errcode.NewRewriter(u.b, gen, errcode.RewriteOptions{}).RewriteFile(u.file)
	if !errors.Is(err, errcode.ErrRegistryMissing) {
		t.Fatalf("err = %v", err)
	}
	if len(gw.calls) != 1 || len(stats.Sites) != 0 {
		t.Fatalf("walk continued after the first failure: calls=%v stats=%+v", gw.calls, stats)
	}
}

func TestRewriteTracesSites(t *testing.T) {
	ring := trace.NewRingTracer(16, trace.LevelDebug)
	u := parseUnit(t, "src/a.js", "throw new Error(\"boom\");")
	gen := errcode.NewGenerator(testCommit, "src/a.js", nil)
	if _, err := errcode.NewRewriter(u.b, gen, errcode.RewriteOptions{Tracer: ring, ParentSpan: 3}).RewriteFile(u.file); err != nil {
		t.Fatal(err)
	}
	events := ring.Snapshot()
	if len(events) != 1 {
		t.Fatalf("events = %+v", events)
	}
	ev := events[0]
	if ev.Scope != trace.ScopeNode || ev.ParentID != 3 || ev.Extra["code"] != "E000000000045c46d49f4b579e6" || ev.Extra["count"] != "1" {
		t.Fatalf("event = %+v", ev)
	}
}

func TestMatchers(t *testing.T) {
	u := parseUnit(t, "src/a.js", "Object.assign(new Error(\"boom\"), { __NEXT_ERROR_CODE: \"E1\" });")
	found := 0
	for i := uint32(1); i <= u.b.Exprs.Arena.Len(); i++ {
		if inner, ok := errcode.WrappedConstruction(u.b, ast.ExprID(i)); ok {
			found++
			if !errcode.IsErrorConstruction(u.b, inner) {
				t.Fatal("inner is not an error construction")
			}
		}
	}
	if found != 1 {
		t.Fatalf("found %d wrappers", found)
	}
}

func TestScan(t *testing.T) {
	src := "throw Object.assign(new Error(\"boom\"), { __NEXT_ERROR_CODE: \"E1\" });\n" +
		"throw new Error(\"boom\" + x);\n" +
		"new TypeError(\"not me\");\n"
	u := parseUnit(t, "src/a.js", src)
	got := errcode.Scan(u.b, u.file)
	if len(got) != 2 {
		t.Fatalf("Scan found %d constructions, want 2", len(got))
	}
	if got[0].Message != "boom" || !got[0].Wrapped {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].Message != "boom%s" || got[1].Wrapped {
		t.Errorf("second = %+v", got[1])
	}
	// дерево не тронуто: повторный скан даёт то же самое
	if again := errcode.Scan(u.b, u.file); len(again) != 2 || again[1] != got[1] {
		t.Errorf("second scan = %+v", again)
	}
}
