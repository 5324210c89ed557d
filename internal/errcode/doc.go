// Package errcode implements the error-code rewrite pass.
//
// Назначение: найти в AST выражения new Error(msg, ...), вывести для каждой
// тройки (файл, сообщение, номер вхождения) стабильный код
// E<commit><hash> и переписать выражение в
// Object.assign(new Error(msg, ...), { __NEXT_ERROR_CODE: "<code>" }),
// сохранив запись о коде через Gateway.
// Не делает: парсинг, печать, обход каталогов, файловый IO (это
// internal/registry и internal/driver).
// Зависимости: internal/ast, internal/source, internal/siphash, internal/trace.
package errcode
