package diag

import "bcplc/internal/source"

// Reporter receives diagnostics from a phase.
type Reporter interface {
	Report(d *Diagnostic)
}

// BagReporter stores reported diagnostics in a Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d *Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(*Diagnostic) {}

// ReportError is a shortcut for reporting a located error.
func ReportError(r Reporter, code Code, primary source.Location, msg string) {
	if r != nil {
		r.Report(NewError(code, primary, msg))
	}
}

// ReportWarning is a shortcut for reporting a located warning.
func ReportWarning(r Reporter, code Code, primary source.Location, msg string) {
	if r != nil {
		r.Report(NewWarning(code, primary, msg))
	}
}
