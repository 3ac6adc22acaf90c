// Package diag defines the diagnostic model shared by all analysis phases.
//
// Diagnostic is the central record: Severity (Info/Warning/Error), a compact
// numeric Code with a stable string form, a human-oriented Message, the
// primary source.Span, and optional Notes.
//
// Phases emit through a diag.Reporter so producers stay decoupled from
// storage; BagReporter aggregates into a Bag, which supports sorting and
// deduplication for deterministic output. Nothing in this analyzer treats a
// diagnostic as fatal: unknown types, circular references and malformed
// aggregates all degrade to warnings while analysis continues.
package diag
