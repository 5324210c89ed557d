package driver

import (
	"errors"
	"fmt"

	"errcode/internal/diag"
	"errcode/internal/source"
)

// ErrSyntax matches every SyntaxError.
var ErrSyntax = errors.New("syntax errors")

// SyntaxError is returned for a unit that did not parse. The unit is not
// rewritten and no code is persisted for it.
type SyntaxError struct {
	Path    string
	FileSet *source.FileSet
	Bag     *diag.Bag
}

func (e *SyntaxError) Error() string {
	errs := 0
	var first *diag.Diagnostic
	for i, d := range e.Bag.Items() {
		if d.Severity < diag.SevError {
			continue
		}
		if first == nil {
			first = &e.Bag.Items()[i]
		}
		errs++
	}
	if first == nil {
		return e.Path + ": syntax errors"
	}
	start, _ := e.FileSet.Resolve(first.Primary)
	msg := fmt.Sprintf("%s:%d:%d: %s", e.Path, start.Line, start.Col, first.Message)
	if errs > 1 {
		msg += fmt.Sprintf(" (and %d more)", errs-1)
	}
	return msg
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }
