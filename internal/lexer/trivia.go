package lexer

import (
	"errcode/internal/diag"
	"errcode/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
// - пробелы, табы и прочие WhiteSpace коалесцируются в один TriviaSpace
// - подряд идущие переводы строк коалесцируются в один TriviaNewline
// - //... до конца строки -> TriviaLineComment
// - /* ... */ -> TriviaBlockComment (без вложенности; если не закрыт, репорт и обрезаем на EOF)
// - #!... в самом начале файла -> TriviaHashbang
func (lx *Lexer) collectLeadingTrivia() {
	if lx.cursor.Off == 0 {
		lx.scanHashbangIntoHold()
	}
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		r, _ := lx.peekRune()

		if lx.cursor.SkipWhile(isSpaceRune) {
			lx.pushTrivia(token.TriviaSpace, start)
			continue
		}
		if lx.cursor.SkipWhile(isLineTerminator) {
			lx.pushTrivia(token.TriviaNewline, start)
			continue
		}

		if r == '/' && lx.scanCommentIntoHold() {
			continue
		}

		// нет больше trivia
		break
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
}

func (lx *Lexer) scanHashbangIntoHold() {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '#' || b1 != '!' {
		return
	}
	start := lx.cursor.Mark()
	lx.skipToLineEnd()
	lx.pushTrivia(token.TriviaHashbang, start)
}

func (lx *Lexer) skipToLineEnd() {
	for !lx.cursor.EOF() {
		r, _ := lx.peekRune()
		if isLineTerminator(r) {
			return
		}
		lx.bumpRune()
	}
}

// //... или /*...*/
func (lx *Lexer) scanCommentIntoHold() bool {
	start := lx.cursor.Mark()
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '/' {
		return false
	}
	switch b1 {
	case '/':
		lx.skipToLineEnd()
		lx.pushTrivia(token.TriviaLineComment, start)
		return true

	case '*':
		lx.cursor.Bump()
		lx.cursor.Bump()
		closed := false
		for !lx.cursor.EOF() {
			if lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) == '/' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				closed = true
				break
			}
			lx.cursor.Bump()
		}
		if !closed {
			lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
		}
		lx.pushTrivia(token.TriviaBlockComment, start)
		return true
	}
	// это не комментарий, пусть сканируется как оператор '/'
	return false
}
