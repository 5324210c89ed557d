// Package format prints a rewritten file back to source text.
//
// Назначение: печать файла после переписывания AST без полноценного
// pretty-print: нетронутые байты копируются из исходника как есть,
// заново рендерятся только синтетические узлы (ExprSynthetic).
// Не делает: форматирование, перенос строк, IO.
// Зависимости: internal/ast, internal/source; CheckRoundTrip ещё и
// internal/lexer, internal/parser.
package format
