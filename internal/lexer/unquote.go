package lexer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// ErrBadEscape is returned when a literal contains a malformed escape.
var ErrBadEscape = errors.New("invalid escape sequence")

// Unquote returns the cooked value of a string literal token ('...' or "...").
func Unquote(text string) (string, error) {
	if len(text) < 2 || (text[0] != '"' && text[0] != '\'') || text[len(text)-1] != text[0] {
		return "", fmt.Errorf("not a string literal: %q", text)
	}
	return cook(text[1:len(text)-1], false)
}

// TemplateRaw returns the raw text of a template chunk: the source between
// the '`' or '}' opener and the '`' or '${' closer, escapes untouched.
func TemplateRaw(text string) string {
	if text != "" && (text[0] == '`' || text[0] == '}') {
		text = text[1:]
	}
	switch {
	case strings.HasSuffix(text, "${") && !escapedAt(text, len(text)-2):
		text = text[:len(text)-2]
	case strings.HasSuffix(text, "`") && !escapedAt(text, len(text)-1):
		text = text[:len(text)-1]
	}
	// CRLF и одиночный CR в сыром тексте шаблона читаются как LF
	if strings.IndexByte(text, '\r') >= 0 {
		text = strings.ReplaceAll(text, "\r\n", "\n")
		text = strings.ReplaceAll(text, "\r", "\n")
	}
	return text
}

// TemplateCooked returns the cooked value of a template chunk. ok is false
// when the chunk has an escape that only tagged templates may carry.
func TemplateCooked(text string) (value string, ok bool) {
	v, err := cook(TemplateRaw(text), true)
	if err != nil {
		return "", false
	}
	return v, true
}

// escapedAt reports whether the byte at i is preceded by an odd run of '\'.
func escapedAt(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

func cook(s string, template bool) (string, error) {
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	var pending []uint16 // UTF-16 единицы из \u-эскейпов, склеиваем суррогатные пары

	flush := func() {
		if len(pending) == 0 {
			return
		}
		for _, r := range utf16.Decode(pending) {
			b.WriteRune(r)
		}
		pending = pending[:0]
	}

	for i := 0; i < len(s); {
		c := s[i]
		if c != '\\' {
			flush()
			_, sz := utf8.DecodeRuneInString(s[i:])
			b.WriteString(s[i : i+sz])
			i += sz
			continue
		}
		i++
		if i >= len(s) {
			return "", fmt.Errorf("%w: trailing backslash", ErrBadEscape)
		}
		c = s[i]
		i++
		if c != 'u' {
			flush()
		}
		switch c {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '\n':
			// продолжение строки
		case '\r':
			if i < len(s) && s[i] == '\n' {
				i++
			}
		case 'x':
			if i+2 > len(s) || !isHex(s[i]) || !isHex(s[i+1]) {
				return "", fmt.Errorf("%w: \\x needs two hex digits", ErrBadEscape)
			}
			v, _ := strconv.ParseUint(s[i:i+2], 16, 8)
			b.WriteRune(rune(v))
			i += 2
		case 'u':
			v, n, err := unicodeEscape(s[i:])
			if err != nil {
				return "", err
			}
			i += n
			if v <= 0xFFFF {
				pending = append(pending, uint16(v))
				continue
			}
			flush()
			b.WriteRune(rune(v))
		case '0', '1', '2', '3', '4', '5', '6', '7':
			if c == '0' && (i >= len(s) || !isDec(s[i])) {
				b.WriteByte(0)
				break
			}
			if template {
				return "", fmt.Errorf("%w: octal escape in template", ErrBadEscape)
			}
			// legacy octal: до трёх цифр, значение <= 0377
			end := i
			limit := 2
			if c > '3' {
				limit = 1
			}
			for end < len(s) && end-i < limit && s[end] >= '0' && s[end] <= '7' {
				end++
			}
			v, _ := strconv.ParseUint(s[i-1:end], 8, 16)
			b.WriteRune(rune(v))
			i = end
		case '8', '9':
			if template {
				return "", fmt.Errorf("%w: \\%c in template", ErrBadEscape, c)
			}
			b.WriteByte(c)
		default:
			// любой другой символ (в том числе не-ASCII): сам себя
			r, sz := utf8.DecodeRuneInString(s[i-1:])
			if r == lineSeparator || r == paragraphSeparator {
				i += sz - 1
				break
			}
			b.WriteString(s[i-1 : i-1+sz])
			i += sz - 1
		}
	}
	flush()
	return b.String(), nil
}

// unicodeEscape разбирает XXXX или {X...} после \u.
func unicodeEscape(s string) (v uint64, n int, err error) {
	if s != "" && s[0] == '{' {
		end := strings.IndexByte(s, '}')
		if end < 2 {
			return 0, 0, fmt.Errorf("%w: malformed \\u{...}", ErrBadEscape)
		}
		v, err = strconv.ParseUint(s[1:end], 16, 32)
		if err != nil || v > utf8.MaxRune {
			return 0, 0, fmt.Errorf("%w: code point out of range", ErrBadEscape)
		}
		return v, end + 1, nil
	}
	if len(s) < 4 {
		return 0, 0, fmt.Errorf("%w: \\u needs four hex digits", ErrBadEscape)
	}
	for i := range 4 {
		if !isHex(s[i]) {
			return 0, 0, fmt.Errorf("%w: \\u needs four hex digits", ErrBadEscape)
		}
	}
	v, _ = strconv.ParseUint(s[:4], 16, 16)
	return v, 4, nil
}
