package diag

import "bcplc/internal/source"

func New(sev Severity, code Code, primary source.Location, msg string) *Diagnostic {
	return &Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Location, msg string) *Diagnostic {
	return New(SevError, code, primary, msg)
}

func NewWarning(code Code, primary source.Location, msg string) *Diagnostic {
	return New(SevWarning, code, primary, msg)
}

// NewNote builds an informational diagnostic meant to be attached as secondary.
func NewNote(primary source.Location, msg string) Diagnostic {
	return Diagnostic{Severity: SevInfo, Code: SynInfo, Primary: primary, Message: msg}
}

func (d *Diagnostic) WithHint(hint string) *Diagnostic {
	d.Hint = hint
	return d
}

func (d *Diagnostic) WithSecondary(secondary ...Diagnostic) *Diagnostic {
	d.Secondary = append(d.Secondary, secondary...)
	return d
}
