package lexer

import (
	"errcode/internal/diag"
	"errcode/internal/token"
)

const maxPunctLen = 4 // >>>=

// scanOperatorOrPunct выбирает самый длинный известный оператор.
// '?.' перед цифрой: это '?' и число (a?.5:b).
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	rest := lx.cursor.Rest()
	for n := min(maxPunctLen, len(rest)); n > 0; n-- {
		k, ok := token.LookupPunct(string(rest[:n]))
		if !ok {
			continue
		}
		if k == token.QuestionDot && len(rest) > 2 && isDec(rest[2]) {
			continue
		}
		for range n {
			lx.cursor.Bump()
		}
		return lx.emit(k, start)
	}

	// неизвестный символ
	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unknown character")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
