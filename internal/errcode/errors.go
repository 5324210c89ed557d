package errcode

import (
	"errors"
	"fmt"
	"strings"
)

// Kind классифицирует фатальные ошибки прохода.
type Kind uint8

const (
	// KindConfiguration: отсутствует обязательное поле или неизвестный режим.
	KindConfiguration Kind = iota + 1
	// KindRegistryMissing: в режиме check для хэша нет записи в реестре.
	KindRegistryMissing
	// KindPersistenceIO: запись в реестр не удалась после всех попыток.
	KindPersistenceIO
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindRegistryMissing:
		return "registry-missing"
	case KindPersistenceIO:
		return "persistence-io"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is.
var (
	ErrConfiguration   = &Error{Kind: KindConfiguration}
	ErrRegistryMissing = &Error{Kind: KindRegistryMissing}
	ErrPersistenceIO   = &Error{Kind: KindPersistenceIO}
)

// Error is the single fatal result of the pass. Any Error aborts the whole
// compilation unit.
type Error struct {
	Kind Kind
	// Field is the missing or invalid configuration field (JSON name).
	Field string
	// Hash is the registry key involved, if any.
	Hash string
	// Path is the registry file involved, if any.
	Path string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	var sb strings.Builder
	switch {
	case e.Msg != "":
		sb.WriteString(e.Msg)
	case e.Field != "":
		fmt.Fprintf(&sb, "%s: field %q", e.Kind, e.Field)
	default:
		sb.WriteString(e.Kind.String())
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches sentinels by Kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && t.Field == "" && t.Hash == "" && t.Msg == "" && t.Err == nil
}

// MissingField reports an absent configuration field.
func MissingField(field string) *Error {
	return &Error{
		Kind:  KindConfiguration,
		Field: field,
		Msg:   fmt.Sprintf("missing required configuration field %q", field),
	}
}

// InvalidMode reports a mode other than check or generate.
func InvalidMode(mode string) *Error {
	return &Error{
		Kind:  KindConfiguration,
		Field: "mode",
		Msg:   fmt.Sprintf("Mode must be 'generate' or 'check', got '%s'", mode),
	}
}

// RegistryMissing reports a hash without a registry entry in check mode.
// The message tells the operator how to fix the build.
func RegistryMissing(hash, path, registryDir string) *Error {
	return &Error{
		Kind: KindRegistryMissing,
		Hash: hash,
		Path: path,
		Msg: fmt.Sprintf("ERROR: File %s does not exist.\n\n"+
			"REQUIRED ACTION:\n"+
			"1. Run 'errcode generate' to generate missing error codes\n"+
			"2. Commit all file changes from %s\n\n"+
			"This is required to maintain error code consistency.", path, registryDir),
	}
}

// PersistenceIO wraps the last storage failure.
func PersistenceIO(hash, path, msg string, cause error) *Error {
	return &Error{
		Kind: KindPersistenceIO,
		Hash: hash,
		Path: path,
		Msg:  msg,
		Err:  cause,
	}
}
