// Package token defines lexical token kinds and trivia for the ECMAScript
// sources processed by errcode.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Comments and whitespace never appear in the main token stream; they are
//     attached to the following token as Leading trivia.
//   - Contextual words (async, of, get, set, static, from, as) are lexed as
//     Ident; the parser decides from position whether they act as keywords.
//   - Template literals are split into TemplateFull or
//     TemplateHead/TemplateMiddle*/TemplateTail, each Text including its
//     delimiters (`, ${, }).
package token
