// Package diag defines the diagnostic model shared by the host phases
// (lexer, parser, driver).
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced by
//     the lexer and parser before the error-code pass runs.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//
// # Scope
//
// Package diag does not format or perform IO. Rendering lives in
// internal/diagfmt. Fatal errors of the error-code pass itself are not
// diagnostics: they are errcode.Error values returned up the call stack,
// because a single one aborts the whole unit.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity - tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code - compact numeric identifier (see codes.go) with stable string form.
//   - Message - human oriented text; keep it short and actionable.
//   - Primary span - the source.Span pointing to the issue.
//   - Notes - optional secondary spans/messages for additional context.
//
// Any diagnostic with Severity >= SevError makes the driver skip the rewrite
// for that file and fail the run.
package diag
