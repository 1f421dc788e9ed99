// Package diag defines the diagnostic model shared by the front-end and the
// exact-print passes.
//
// # Purpose
//
//   - Provide deterministic, serialisable records of non-fatal findings:
//     lexer trouble, ambiguous facts, residue appended at end of input.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//
// Rendering lives in internal/diagfmt. Fatal conditions are plain Go errors
// and never travel through this package.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error.
//   - Code – numeric identifier with a stable string form (codes.go).
//   - Message – short human text.
//   - Primary – the source.Span the finding points at.
//   - Notes – optional secondary spans with extra context.
//
// # Emitting diagnostics
//
// Passes hold a diag.Reporter. Use ReportBuilder (ReportWarning, ReportInfo,
// ...) when notes are attached, or call Reporter.Report directly otherwise.
// BagReporter collects into a Bag, which keeps at most max_diagnostics and
// counts the rest; DedupReporter drops exact repeats before they reach the
// next reporter.
package diag
