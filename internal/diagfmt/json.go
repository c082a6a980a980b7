package diagfmt

import (
	"encoding/json"
	"io"

	"bcplc/internal/diag"
	"bcplc/internal/source"
)

// LocationJSON is a source location; line is 1-based, column 0-based.
type LocationJSON struct {
	File   string `json:"file"`
	Line   uint32 `json:"line"`
	Column uint32 `json:"column"`
	Width  uint32 `json:"width"`
}

// DiagnosticJSON mirrors diag.Diagnostic, secondaries included.
type DiagnosticJSON struct {
	Severity  string           `json:"severity"`
	Code      string           `json:"code"`
	Message   string           `json:"message"`
	Hint      string           `json:"hint,omitempty"`
	Location  LocationJSON     `json:"location"`
	Secondary []DiagnosticJSON `json:"secondary,omitempty"`
}

// DiagnosticsOutput is the root of the JSON document.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

func makeLocation(loc source.Location, fs *source.FileSet, mode PathMode) LocationJSON {
	return LocationJSON{
		File:   formatPath(fs, loc.File, mode),
		Line:   loc.Line,
		Column: loc.Column,
		Width:  loc.Width,
	}
}

func makeDiagnostic(d *diag.Diagnostic, fs *source.FileSet, opts JSONOpts) DiagnosticJSON {
	out := DiagnosticJSON{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Message:  d.Message,
		Hint:     d.Hint,
		Location: makeLocation(d.Primary, fs, opts.PathMode),
	}
	if opts.OmitSecondary {
		return out
	}
	for i := range d.Secondary {
		out.Secondary = append(out.Secondary, makeDiagnostic(&d.Secondary[i], fs, opts))
	}
	return out
}

// BuildDiagnosticsOutput builds the JSON structure without serializing it.
func BuildDiagnosticsOutput(diags []*diag.Diagnostic, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	n := len(diags)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0, n)}
	for _, d := range diags[:n] {
		out.Diagnostics = append(out.Diagnostics, makeDiagnostic(d, fs, opts))
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes diagnostics as an indented JSON document.
func JSON(w io.Writer, diags []*diag.Diagnostic, fs *source.FileSet, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(diags, fs, opts))
}
