// Package fuzztests houses Go fuzz harnesses for the early pipeline
// (source -> lexer -> parser -> rewrite -> print). They guard against panics,
// hangs and broken round trips on arbitrary inputs.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
