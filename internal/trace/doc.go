// Package trace records what the error-code pass is doing: driver
// operations, passes over a unit (lex, parse, rewrite, print, persist),
// single units and, at debug level, every rewritten site.
//
// Tracing is off unless asked for on the command line:
//
//	errcode generate --trace=- --trace-level=detail src/
//
// Implementations:
//
//   - Nop: disabled tracing, nothing allocated
//   - StreamTracer: writes every event as it happens
//   - RingTracer: keeps the last N events for a dump after a failure
//   - MultiTracer: fans out to several tracers
//
// Levels select scopes: phase emits driver and pass events, detail adds
// units, debug adds nodes. Tracers travel through a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", parent)
//	defer span.End("")
package trace
