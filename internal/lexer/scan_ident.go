package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"errcode/internal/diag"
	"errcode/internal/token"
)

// scanIdentOrKeyword сканирует IdentifierName и проверяет через LookupKeyword.
// Token.Text: ровно исходный срез, escape-последовательности \uXXXX
// раскрывает IdentName.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	escaped := false

	for first := true; ; first = false {
		r, sz := lx.peekRune()
		if sz == 0 {
			break
		}
		if r == '\\' {
			if !lx.scanIdentEscape() {
				break
			}
			escaped = true
			continue
		}
		if (first && !isIdentStartRune(r)) || (!first && !isIdentContinueRune(r)) {
			break
		}
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	if sp.Empty() {
		// одиночный '\' или не-идентификаторная руна
		lx.bumpRune()
		sp = lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "unknown character")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	text := lx.text(sp)

	// слово с escape никогда не считается ключевым
	if !escaped {
		if k, ok := token.LookupKeyword(text); ok {
			return token.Token{Kind: k, Span: sp, Text: text}
		}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

// scanIdentEscape съедает \uXXXX или \u{X...}.
func (lx *Lexer) scanIdentEscape() bool {
	save := lx.cursor.Mark()
	lx.cursor.Bump() // '\'
	if !lx.cursor.Eat('u') {
		lx.cursor.Reset(save)
		return false
	}
	if lx.cursor.Eat('{') {
		n := 0
		for isHex(lx.cursor.Peek()) {
			lx.cursor.Bump()
			n++
		}
		if n == 0 || !lx.cursor.Eat('}') {
			lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(save), "invalid unicode escape in identifier")
		}
		return true
	}
	for range 4 {
		if !isHex(lx.cursor.Peek()) {
			lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(save), "invalid unicode escape in identifier")
			return true
		}
		lx.cursor.Bump()
	}
	return true
}

func (lx *Lexer) scanPrivateName() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '#'
	r, sz := lx.peekRune()
	if sz == 0 || (!isIdentStartRune(r) && r != '\\') {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "unexpected '#'")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	name := lx.scanIdentOrKeyword()
	sp := lx.cursor.SpanFrom(start)
	if name.Kind == token.Invalid {
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	return token.Token{Kind: token.PrivateName, Span: sp, Text: lx.text(sp)}
}

// IdentName returns the identifier name with unicode escapes decoded.
func IdentName(text string) string {
	if !strings.Contains(text, `\u`) {
		return text
	}
	var b strings.Builder
	for i := 0; i < len(text); {
		if text[i] != '\\' || i+1 >= len(text) || text[i+1] != 'u' {
			b.WriteByte(text[i])
			i++
			continue
		}
		i += 2
		var hex string
		if i < len(text) && text[i] == '{' {
			end := strings.IndexByte(text[i:], '}')
			if end < 0 {
				b.WriteString(text[i-2:])
				break
			}
			hex, i = text[i+1:i+end], i+end+1
		} else {
			hex, i = text[i:min(i+4, len(text))], min(i+4, len(text))
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || !utf8.ValidRune(rune(v)) {
			b.WriteRune(utf8.RuneError)
			continue
		}
		b.WriteRune(rune(v))
	}
	return b.String()
}
