package diag

import (
	"testing"

	"errcode/internal/source"
)

func TestBagLimitAndErrors(t *testing.T) {
	b := NewBag(2)
	if !b.Add(Diagnostic{Severity: SevWarning, Code: SynExpectSemicolon}) {
		t.Fatal("first add rejected")
	}
	if b.HasErrors() {
		t.Fatal("warning must not count as error")
	}
	b.Add(Diagnostic{Severity: SevError, Code: SynUnexpectedToken})
	if b.Add(Diagnostic{Severity: SevError, Code: LexBadNumber}) {
		t.Fatal("third add should hit the limit")
	}
	if !b.HasErrors() || b.Len() != 2 {
		t.Fatalf("len=%d errors=%v", b.Len(), b.HasErrors())
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(0)
	r := &BagReporter{Bag: b}
	r.Report(SynUnexpectedToken, SevError, source.Span{Start: 10, End: 11}, "b", nil)
	r.Report(LexBadNumber, SevError, source.Span{Start: 2, End: 4}, "a", nil)
	r.Report(LexBadNumber, SevError, source.Span{Start: 2, End: 4}, "a again", nil)
	b.Sort()
	b.Dedup()

	items := b.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items after dedup, got %d", len(items))
	}
	if items[0].Code != LexBadNumber || items[1].Code != SynUnexpectedToken {
		t.Fatalf("unexpected order: %v, %v", items[0].Code, items[1].Code)
	}
}

func TestCodeID(t *testing.T) {
	tests := map[Code]string{
		LexUnterminatedTemplate: "LEX1005",
		SynExpectSemicolon:      "SYN2002",
		IOLoadFileError:         "IO4001",
		ProjManifestInvalid:     "PRJ5001",
		UnknownCode:             "E0000",
	}
	for c, want := range tests {
		if got := c.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", c, got, want)
		}
	}
}

func TestSeverityNames(t *testing.T) {
	tests := []struct {
		sev   Severity
		name  string
		sarif string
	}{
		{SevInfo, "INFO", "note"},
		{SevWarning, "WARNING", "warning"},
		{SevError, "ERROR", "error"},
		{Severity(9), "UNKNOWN", "note"},
	}
	for _, tt := range tests {
		if got := tt.sev.String(); got != tt.name {
			t.Errorf("String(%d) = %q, want %q", tt.sev, got, tt.name)
		}
		if got := tt.sev.SARIFLevel(); got != tt.sarif {
			t.Errorf("SARIFLevel(%d) = %q, want %q", tt.sev, got, tt.sarif)
		}
	}
}
