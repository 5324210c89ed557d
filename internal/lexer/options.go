package lexer

import (
	"errcode/internal/diag"
	"errcode/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil, тогда ошибки игнорируем (но продолжаем лексить)
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter == nil || lx.muted > 0 {
		return
	}
	lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
}
