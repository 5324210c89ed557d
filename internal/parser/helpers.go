package parser

import (
	"errcode/internal/ast"
	"errcode/internal/diag"
	"errcode/internal/lexer"
	"errcode/internal/source"
	"errcode/internal/token"
)

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

// consumed отмечает токен, полученный пересканированием, как съеденный.
func (p *Parser) consumed(tok token.Token) token.Token {
	p.lastSpan = tok.Span
	return tok
}

// peek2 возвращает токен после текущего, не сдвигая лексер.
func (p *Parser) peek2() token.Token {
	st := p.lx.Save()
	unmute := p.lx.Mute()
	p.lx.Next()
	tok := p.lx.Peek()
	unmute()
	p.lx.Restore(st)
	return tok
}

// getDiagnosticSpan: span для диагностики; на EOF: позиция после lastSpan
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect: ожидаем конкретный токен. Если нет: репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	if p.at(token.EOF) {
		code = diag.SynUnexpectedEOF
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(code, diag.SevError, diagSpan, msg)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.lx.Peek().Text}, false
}

// expectClose: как expect для закрывающей скобки, с заметкой об открывающей.
func (p *Parser) expectClose(k token.Kind, open source.Span, code diag.Code, msg string) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	if p.opts.Reporter != nil {
		p.opts.CurrentErrors++
		if !p.opts.Enough() {
			p.opts.Reporter.Report(code, diag.SevError, p.getDiagnosticSpan(), msg, []diag.Note{{Span: open, Msg: "opened here"}})
		}
	}
	return false
}

// consumeSemicolon реализует автоматическую вставку ';':
// точка с запятой может быть опущена перед '}', EOF и после перевода строки.
func (p *Parser) consumeSemicolon() bool {
	tok := p.lx.Peek()
	switch {
	case tok.Kind == token.Semicolon:
		p.advance()
		return true
	case tok.Kind == token.RBrace, tok.Kind == token.EOF, tok.NewlineBefore():
		return true
	}
	p.err(diag.SynExpectSemicolon, "expected ';' before \""+tok.Text+"\"")
	return false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if p.opts.Reporter != nil {
		if sev == diag.SevError {
			p.opts.CurrentErrors++
		}
		if !p.opts.Enough() {
			p.opts.Reporter.Report(code, sev, sp, msg, nil)
			return true
		}
		return false // достигли максимального количества ошибок
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	return false // нет reporter - ничего не записали
}

// spanFrom: span от start до последнего съеденного токена.
func (p *Parser) spanFrom(start source.Span) source.Span {
	return start.Cover(p.lastSpan)
}

// exprSpan: span уже построенного выражения.
func (p *Parser) exprSpan(id ast.ExprID) source.Span {
	if e := p.arenas.Exprs.Get(id); e != nil {
		return e.Span
	}
	return p.lastSpan
}

// intern интернирует имя идентификатора с раскрытыми \u-эскейпами.
func (p *Parser) intern(tok token.Token) source.StringID {
	return p.arenas.Strings.Intern(lexer.IdentName(tok.Text))
}
