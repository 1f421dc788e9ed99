// Package trace records spans and point events of the exact-print pipeline.
// Files and passes are spans; at debug level every visited node is a point.
//
//	exactprint roundtrip --trace=- --trace-level=detail ./src
//
// Tracers:
//
//   - Nop discards everything
//   - StreamTracer writes text or NDJSON as events arrive
//   - RingTracer keeps the tail in memory; the CLI dumps it on failure
//   - MultiTracer fans out
//
// Passes find their tracer and parent span in the context:
//
//	t := trace.FromContext(ctx)
//	span := trace.Begin(t, trace.ScopePass, "relativize", trace.CurrentSpan(ctx).SpanID)
//	defer span.End("")
package trace
