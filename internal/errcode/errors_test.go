package errcode_test

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"errcode/internal/errcode"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		is   error
		not  error
	}{
		{"missing_field", errcode.MissingField("commitHash"), errcode.ErrConfiguration, errcode.ErrPersistenceIO},
		{"invalid_mode", errcode.InvalidMode("x"), errcode.ErrConfiguration, errcode.ErrRegistryMissing},
		{"registry_missing", errcode.RegistryMissing("abc", "errors/abc.json", "errors"), errcode.ErrRegistryMissing, errcode.ErrConfiguration},
		{"persistence", errcode.PersistenceIO("abc", "errors/abc.json", "write failed", fs.ErrPermission), errcode.ErrPersistenceIO, errcode.ErrRegistryMissing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.is) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.is)
			}
			if errors.Is(tt.err, tt.not) {
				t.Errorf("errors.Is(%v, %v) = true", tt.err, tt.not)
			}
			var e *errcode.Error
			if !errors.As(tt.err, &e) {
				t.Fatalf("errors.As failed for %v", tt.err)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	if got := errcode.InvalidMode("fix").Error(); got != "Mode must be 'generate' or 'check', got 'fix'" {
		t.Errorf("InvalidMode = %q", got)
	}
	msg := errcode.RegistryMissing("abc", "errors/abc.json", "errors").Error()
	for _, want := range []string{
		"ERROR: File errors/abc.json does not exist.",
		"REQUIRED ACTION:",
		"Commit all file changes from errors",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("RegistryMissing message lacks %q:\n%s", want, msg)
		}
	}
	if got := errcode.MissingField("mode").Field; got != "mode" {
		t.Errorf("MissingField.Field = %q", got)
	}
}

func TestPersistenceUnwrap(t *testing.T) {
	err := errcode.PersistenceIO("abc", "errors/abc.json", "Failed to write error metadata after 3 retries", fs.ErrPermission)
	if !errors.Is(err, fs.ErrPermission) {
		t.Fatal("cause is not reachable through Unwrap")
	}
	if !strings.HasPrefix(err.Error(), "Failed to write error metadata after 3 retries: ") {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestKindString(t *testing.T) {
	if errcode.KindRegistryMissing.String() != "registry-missing" || errcode.Kind(0).String() != "unknown" {
		t.Fatal("unexpected Kind names")
	}
}
