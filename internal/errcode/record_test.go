package errcode_test

import (
	"testing"

	"errcode/internal/errcode"
)

const testCommit = "0000000000"

func TestRecordCanonical(t *testing.T) {
	tests := []struct {
		name string
		rec  errcode.Record
		want string
	}{
		{
			name: "plain",
			rec:  errcode.Record{FilePath: "/test/file.js", ErrorMessage: "Request failed: %s", OccurrenceCount: 1},
			want: `{"error_message":"Request failed: %s","file_path":"/test/file.js","occurrence_count":1}`,
		},
		{
			name: "escapes",
			rec:  errcode.Record{FilePath: `C:\src\a.js`, ErrorMessage: "a\"b\\c\n\t\x01\x1f", OccurrenceCount: 12},
			want: `{"error_message":"a\"b\\c\n\t\u0001\u001f","file_path":"C:\\src\\a.js","occurrence_count":12}`,
		},
		{
			name: "non_ascii_raw",
			rec:  errcode.Record{FilePath: "src/ошибка.js", ErrorMessage: "<é> & /", OccurrenceCount: 2},
			want: `{"error_message":"<é> & /","file_path":"src/ошибка.js","occurrence_count":2}`,
		},
		{
			name: "backspace_formfeed",
			rec:  errcode.Record{FilePath: "a", ErrorMessage: "\b\f\r", OccurrenceCount: 1},
			want: `{"error_message":"\b\f\r","file_path":"a","occurrence_count":1}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(tt.rec.Canonical()); got != tt.want {
				t.Errorf("Canonical =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestCodes(t *testing.T) {
	tests := []struct {
		path  string
		msg   string
		count int
		want  string
	}{
		{"/test/file.js", "Failed to fetch user %s: %s", 1, "E000000000026c63d53d605f848"},
		{"/test/file.js", "Failed to fetch user %s: %s", 2, "E0000000000d0976c95c4305a87"},
		{"/test/file.js", "Request failed: %s", 1, "E0000000000a5151f4ce82c5c79"},
		{"/test/file.js", "Request failed: %s", 2, "E0000000000c87aab5b6cb002eb"},
		{"/other/file.js", "Request failed: %s", 1, "E0000000000595a1876036c5997"},
		{"src/a.js", "boom", 1, "E000000000045c46d49f4b579e6"},
		{"src/a.js", "%s", 1, "E000000000097befd87373e55b4"},
	}
	for _, tt := range tests {
		rec := errcode.Record{FilePath: tt.path, ErrorMessage: tt.msg, OccurrenceCount: tt.count}
		if got := errcode.Code(testCommit, rec); got != tt.want {
			t.Errorf("Code(%s, %q, %d) = %s, want %s", tt.path, tt.msg, tt.count, got, tt.want)
		}
	}
}

func TestHashDeterministic(t *testing.T) {
	rec := errcode.Record{FilePath: "src/a.js", ErrorMessage: "boom", OccurrenceCount: 1}
	first := errcode.Hash(rec)
	for range 3 {
		if got := errcode.Hash(rec); got != first {
			t.Fatalf("Hash is not stable: %s vs %s", got, first)
		}
	}
	if len(first) < 8 {
		t.Fatalf("hash %q shorter than 8 digits", first)
	}
}

func TestFormatHashPads(t *testing.T) {
	if got := errcode.FormatHash(0xabc); got != "00000abc" {
		t.Fatalf("FormatHash = %q", got)
	}
	if got := errcode.FormatHash(0x123456789); got != "123456789" {
		t.Fatalf("FormatHash = %q", got)
	}
}

func TestGeneratorCountsPerTemplate(t *testing.T) {
	gw := &recordingGateway{}
	gen := errcode.NewGenerator(testCommit, "/test/file.js", gw)

	want := []struct {
		msg  string
		code string
	}{
		{"Failed to fetch user %s: %s", "E000000000026c63d53d605f848"},
		{"Request failed: %s", "E0000000000a5151f4ce82c5c79"},
		{"Failed to fetch user %s: %s", "E0000000000d0976c95c4305a87"},
		{"Request failed: %s", "E0000000000c87aab5b6cb002eb"},
	}
	for i, w := range want {
		code, err := gen.CodeFor(w.msg)
		if err != nil {
			t.Fatalf("CodeFor #%d: %v", i, err)
		}
		if code != w.code {
			t.Errorf("CodeFor #%d = %s, want %s", i, code, w.code)
		}
	}
	if len(gw.calls) != len(want) {
		t.Fatalf("gateway called %d times, want %d", len(gw.calls), len(want))
	}
	if gw.calls[0] != "26c63d53d605f848" {
		t.Errorf("first persisted hash = %s", gw.calls[0])
	}
}

func TestGeneratorNilGatewayIsDryRun(t *testing.T) {
	gen := errcode.NewGenerator(testCommit, "src/a.js", nil)
	is, err := gen.Issue("boom")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if is.Code != "E000000000045c46d49f4b579e6" || is.Hash != "45c46d49f4b579e6" {
		t.Fatalf("unexpected issue %+v", is)
	}
	if is.Record.OccurrenceCount != 1 || is.Record.FilePath != "src/a.js" {
		t.Fatalf("unexpected record %+v", is.Record)
	}
}

func TestGeneratorCountsFailedOccurrence(t *testing.T) {
	gw := &recordingGateway{fail: errcode.PersistenceIO("h", "p", "disk full", nil)}
	gen := errcode.NewGenerator(testCommit, "src/a.js", gw)
	if _, err := gen.Issue("boom"); err == nil {
		t.Fatal("expected gateway error")
	}
	gw.fail = nil
	is, err := gen.Issue("boom")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if is.Record.OccurrenceCount != 2 {
		t.Fatalf("occurrence = %d, want 2", is.Record.OccurrenceCount)
	}
}
