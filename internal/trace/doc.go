// Package trace records what the compiler is doing and how long it takes.
//
// Tracing is switched on from the command line:
//
//	bcplc check --trace=- --trace-level=detail main.b
//
// A Tracer travels with the context.Context of a compile:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.StartSpan(ctx, trace.ScopeFile, "parse:"+path)
//	defer span.End("")
//
// Spans opened through StartSpan nest under the span already in ctx.
//
// Implementations: the nop tracer when disabled, StreamTracer for immediate
// text or NDJSON output, RingTracer for an in-memory tail of recent events (written out
// on Close with --trace-mode=ring) and MultiTracer to fan out to several of them.
//
// Levels select scopes: phase emits driver and pass events, detail adds
// per-file events, debug adds per-item events.
package trace
