// Package diag defines the diagnostic model shared by all compilation phases.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture findings
//     produced while lowering chart specifications.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform any formatting decisions beyond the stable
// short form used for CLI and golden output, and it performs no IO. The CLI
// layer decides how and where diagnostics are shown.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Path – the document path of the offending node, e.g. "encoding.shape".
//     Input specifications are in-memory documents, so positions are JSON
//     paths rather than byte offsets.
//   - Notes – optional secondary paths/messages for additional context.
//
// Notes should be used sparingly: each note must add new context rather than
// repeating the diagnostic message.
//
// # Emitting diagnostics
//
// Phases should use a diag.Reporter to decouple emission from storage. The
// composite-mark expander, for example, calls ReportWarning and Emit without
// knowing whether diagnostics end up in a Bag, on stderr, or discarded.
//
// Keep the data model deterministic: any new fields should avoid side effects
// so the CLI and tooling can safely serialise diagnostics for caching and
// testing.
package diag
