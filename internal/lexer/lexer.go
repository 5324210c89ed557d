package lexer

import (
	"errcode/internal/source"
	"errcode/internal/token"
)

// Lexer превращает файл в поток значимых токенов.
//
// Регулярные выражения и продолжения шаблонов контекстно-зависимы, поэтому
// лексер всегда отдаёт '/' '/=' и '}' как пунктуацию, а парсер, зная
// контекст, просит пересканировать токен через ReScanRegExp и
// ReScanTemplate.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // 1 элементный буфер для токена
	hold   []token.Trivia // накопленные leading trivia
	muted  int
}

// State is a lexer snapshot used for speculative scanning.
type State struct {
	off  uint32
	look token.Token
	has  bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// File returns the file being scanned.
func (lx *Lexer) File() *source.File { return lx.file }

// Next возвращает следующий **значимый** токен с уже собранным Leading.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		tok := token.Token{
			Kind: token.EOF,
			Span: lx.emptySpan(),
		}
		// комментарии в конце файла нужны для NewlineBefore у EOF
		tok.Leading = lx.takeHold()
		return tok
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isIdentStartByte(ch) || ch == '\\':
		tok = lx.scanIdentOrKeyword()

	case ch >= utf8RuneSelf:
		// Возможный Unicode идентификатор → scanIdentOrKeyword() разберётся
		tok = lx.scanIdentOrKeyword()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '.' && lx.isNumberAfterDot():
		tok = lx.scanNumber()

	case ch == '"' || ch == '\'':
		tok = lx.scanString(ch)

	case ch == '`':
		tok = lx.scanTemplate()

	case ch == '#':
		tok = lx.scanPrivateName()

	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.Leading = lx.takeHold()
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

// Save snapshots the lexer position.
func (lx *Lexer) Save() State {
	st := State{off: lx.cursor.Off}
	if lx.look != nil {
		st.look, st.has = *lx.look, true
	}
	return st
}

// Restore rewinds the lexer to a snapshot taken by Save.
func (lx *Lexer) Restore(st State) {
	lx.cursor.Off = st.off
	lx.hold = nil
	lx.look = nil
	if st.has {
		t := st.look
		lx.look = &t
	}
}

// Mute suppresses diagnostics until the returned func is called.
// Calls nest.
func (lx *Lexer) Mute() (unmute func()) {
	lx.muted++
	return func() { lx.muted-- }
}

// ReScanRegExp re-reads tok, which must be '/' or '/=', as a regular
// expression literal. Any buffered lookahead is discarded.
func (lx *Lexer) ReScanRegExp(tok token.Token) token.Token {
	lx.look = nil
	lx.cursor.Off = tok.Span.Start
	out := lx.scanRegExp()
	out.Leading = tok.Leading
	return out
}

// ReScanTemplate re-reads tok, which must be '}', as the continuation of a
// template literal: TemplateMiddle or TemplateTail.
func (lx *Lexer) ReScanTemplate(tok token.Token) token.Token {
	lx.look = nil
	lx.cursor.Off = tok.Span.Start
	out := lx.scanTemplate()
	out.Leading = tok.Leading
	return out
}

func (lx *Lexer) takeHold() []token.Trivia {
	if len(lx.hold) == 0 {
		return nil
	}
	out := make([]token.Trivia, len(lx.hold))
	copy(out, lx.hold)
	lx.hold = lx.hold[:0]
	return out
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
}
