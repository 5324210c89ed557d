package token

import (
	"errcode/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, string, regexp or template literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumberLit, BigIntLit, StringLit, RegExpLit, TemplateFull, TemplateHead:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsWord reports whether the token may serve as an IdentifierName
// (property key, member name): identifiers and every reserved word.
func (t Token) IsWord() bool {
	return t.Kind == Ident || t.Kind.IsKeyword()
}

// IsContextual reports whether the token is the identifier word.
func (t Token) IsContextual(word string) bool {
	return t.Kind == Ident && t.Text == word
}

// NewlineBefore reports whether a line terminator precedes the token.
// Automatic semicolon insertion and restricted productions depend on it.
func (t Token) NewlineBefore() bool {
	for _, tr := range t.Leading {
		if tr.Kind == TriviaNewline {
			return true
		}
		if tr.Kind == TriviaBlockComment && tr.HasNewline() {
			return true
		}
	}
	return false
}
