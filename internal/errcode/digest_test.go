package errcode_test

import (
	"testing"

	"errcode/internal/errcode"
)

func TestDigest(t *testing.T) {
	if got := errcode.AppendToDigest("123", "E1"); got != "123;E1" {
		t.Errorf("AppendToDigest = %q", got)
	}
	if got := errcode.AppendToDigest("123", ""); got != "123" {
		t.Errorf("AppendToDigest empty = %q", got)
	}
	tests := []struct {
		digest string
		want   string
		ok     bool
	}{
		{"123;E0000000000abc", "E0000000000abc", true},
		{"E1;E2", "E1", true},
		{"NEXT_NOT_FOUND", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := errcode.ExtractFromDigest(tt.digest)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ExtractFromDigest(%q) = %q, %v", tt.digest, got, ok)
		}
	}
}

func TestSplitCode(t *testing.T) {
	tests := []struct {
		code, commit string
		want         string
		ok           bool
	}{
		{"E000000000026c63d53d605f848", testCommit, "26c63d53d605f848", true},
		{"E000000000026c63d53d605f848", "1111111111", "", false},
		{"E0000000000abc", testCommit, "", false},
		{"E0000000000XYZXYZXY", testCommit, "", false},
	}
	for _, tt := range tests {
		got, ok := errcode.SplitCode(tt.code, tt.commit)
		if got != tt.want || ok != tt.ok {
			t.Errorf("SplitCode(%q, %q) = %q, %v", tt.code, tt.commit, got, ok)
		}
	}
	if !errcode.MatchesHash("E000000000026c63d53d605f848", "26c63d53d605f848") {
		t.Error("MatchesHash should match the hash suffix")
	}
	if errcode.MatchesHash("26c63d53d605f848", "26c63d53d605f848") {
		t.Error("MatchesHash needs the E prefix")
	}
}
