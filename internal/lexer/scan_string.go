package lexer

import (
	"errcode/internal/diag"
	"errcode/internal/token"
)

// scanString сканирует '...' или "...". Escape-последовательности здесь
// только пропускаются, значение строит Unquote.
func (lx *Lexer) scanString(quote byte) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // открывающая кавычка
	for !lx.cursor.EOF() {
		r, _ := lx.peekRune()
		switch {
		case r == rune(quote):
			lx.cursor.Bump()
			return lx.emit(token.StringLit, start)
		case r == '\\':
			lx.cursor.Bump()
			// \ + перевод строки: продолжение строки
			lx.bumpRune()
		case r == '\n' || r == '\r':
			// U+2028/U+2029 в строке разрешены, обычный перевод строки, нет
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		default:
			lx.bumpRune()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// scanTemplate сканирует кусок шаблона, начиная с '`' или '}'.
//
//	`text`    TemplateFull
//	`text${   TemplateHead
//	}text${   TemplateMiddle
//	}text`    TemplateTail
func (lx *Lexer) scanTemplate() token.Token {
	start := lx.cursor.Mark()
	head := lx.cursor.Bump() == '`'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '`':
			lx.cursor.Bump()
			if head {
				return lx.emit(token.TemplateFull, start)
			}
			return lx.emit(token.TemplateTail, start)
		case b == '$' && lx.cursor.PeekAt(1) == '{':
			lx.cursor.Bump()
			lx.cursor.Bump()
			if head {
				return lx.emit(token.TemplateHead, start)
			}
			return lx.emit(token.TemplateMiddle, start)
		case b == '\\':
			lx.cursor.Bump()
			lx.bumpRune()
		default:
			lx.bumpRune()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedTemplate, sp, "unterminated template literal")
	if head {
		return token.Token{Kind: token.TemplateFull, Span: sp, Text: lx.text(sp)}
	}
	return token.Token{Kind: token.TemplateTail, Span: sp, Text: lx.text(sp)}
}

// scanRegExp сканирует /body/flags начиная с '/'.
func (lx *Lexer) scanRegExp() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	inClass := false
	for {
		r, sz := lx.peekRune()
		if sz == 0 || isLineTerminator(r) {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedRegExp, sp, "unterminated regular expression")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}
		lx.bumpRune()
		switch r {
		case '\\':
			if r2, sz2 := lx.peekRune(); sz2 > 0 && !isLineTerminator(r2) {
				lx.bumpRune()
			}
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				for {
					f, fsz := lx.peekRune()
					if fsz == 0 || !isIdentContinueRune(f) {
						break
					}
					lx.bumpRune()
				}
				return lx.emit(token.RegExpLit, start)
			}
		}
	}
}
