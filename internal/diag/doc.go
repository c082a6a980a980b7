// Package diag defines the diagnostic model shared by the lexer, the parser
// and the driver.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity: Info, Warning or Error (severity.go).
//   - Code: numeric rule identifier with a stable string form (codes.go).
//   - Message: short, actionable text.
//   - Hint: optional help text, rendered dimmed after the underline.
//   - Primary: the source.Location the finding is anchored to.
//   - Secondary: related diagnostics, each fully located, forming a tree
//     rooted at the primary failure (e.g. "first defined here").
//
// A *Diagnostic satisfies error, so parsing functions propagate fatal
// findings through ordinary error returns and callers recover the full shape
// with errors.As.
//
// # Emitting diagnostics
//
// Non-fatal findings go through a Reporter. BagReporter stores them in a Bag,
// which supports limits, merging and deterministic sorting.
//
// Package diag performs no formatting or IO. Rendering lives in
// internal/diagfmt.
package diag
