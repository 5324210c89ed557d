package lexer

import (
	"errcode/internal/diag"
	"errcode/internal/token"
)

// Поддержка: 0, 123, 1_000, 0b..., 0o..., 0x..., legacy 0777, 1.0, .5,
// 1e-3, 1.0e+10 и BigInt суффикс n.
// Неверные формы, репорт, токен по возможности завершаем.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.NumberLit

	digits := func(ok func(byte) bool) int {
		n := 0
		for {
			b := lx.cursor.Peek()
			if b == '_' || ok(b) {
				lx.cursor.Bump()
				n++
				continue
			}
			return n
		}
	}

	switch {
	case lx.cursor.Peek() == '.':
		// ".digits"
		lx.cursor.Bump()
		digits(isDec)
		lx.scanExponent(start)

	case lx.cursor.Peek() == '0' && isRadixPrefix(lx.cursor.PeekAt(1)):
		lx.cursor.Bump()
		var ok func(byte) bool
		switch lx.cursor.Bump() {
		case 'b', 'B':
			ok = func(b byte) bool { return b == '0' || b == '1' }
		case 'o', 'O':
			ok = func(b byte) bool { return b >= '0' && b <= '7' }
		default:
			ok = isHex
		}
		if digits(ok) == 0 {
			lx.errLex(diag.LexBadNumber, lx.cursor.SpanFrom(start), "expected digits after radix prefix")
		}
		if lx.cursor.Eat('n') {
			kind = token.BigIntLit
		}

	default:
		digits(isDec)
		if lx.cursor.Eat('n') {
			kind = token.BigIntLit
			break
		}
		if lx.cursor.Peek() == '.' {
			lx.cursor.Bump()
			digits(isDec)
		}
		lx.scanExponent(start)
	}

	// идентификатор сразу после числа: 3in, 1px
	if r, sz := lx.peekRune(); sz > 0 && (isIdentStartRune(r) || isDec(lx.cursor.Peek())) {
		for {
			r2, sz2 := lx.peekRune()
			if sz2 == 0 || !isIdentContinueRune(r2) {
				break
			}
			lx.bumpRune()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, "identifier starts immediately after numeric literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	return lx.emit(kind, start)
}

func (lx *Lexer) scanExponent(start Mark) {
	if b := lx.cursor.Peek(); b != 'e' && b != 'E' {
		return
	}
	lx.cursor.Bump()
	if b := lx.cursor.Peek(); b == '+' || b == '-' {
		lx.cursor.Bump()
	}
	if !isDec(lx.cursor.Peek()) {
		lx.errLex(diag.LexBadNumber, lx.cursor.SpanFrom(start), "expected digits in exponent")
		return
	}
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
}

func isRadixPrefix(b byte) bool {
	switch b {
	case 'b', 'B', 'o', 'O', 'x', 'X':
		return true
	}
	return false
}
