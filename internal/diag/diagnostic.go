package diag

import (
	"fmt"

	"bcplc/internal/source"
)

// Diagnostic is one finding plus the related findings that explain it.
// Secondary diagnostics are fully located themselves and are rendered after
// the primary, in order.
type Diagnostic struct {
	Severity  Severity
	Code      Code
	Message   string
	Hint      string
	Primary   source.Location
	Secondary []Diagnostic
}

// Error lets a diagnostic travel through ordinary error returns.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", d.Code.ID(), d.Primary.Line, d.Primary.Column+1, d.Message)
}

// IsError reports whether the diagnostic is fatal.
func (d *Diagnostic) IsError() bool {
	return d != nil && d.Severity >= SevError
}

// Walk visits d and then every secondary diagnostic depth-first, in order.
func (d *Diagnostic) Walk(fn func(depth int, d *Diagnostic)) {
	d.walk(0, fn)
}

func (d *Diagnostic) walk(depth int, fn func(int, *Diagnostic)) {
	fn(depth, d)
	for i := range d.Secondary {
		d.Secondary[i].walk(depth+1, fn)
	}
}
