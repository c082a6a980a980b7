package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"bcplc/internal/diag"
)

func TestJSONKeepsSecondaryTree(t *testing.T) {
	fs, d := duplicateDefault(t)
	var buf bytes.Buffer
	if err := JSON(&buf, []*diag.Diagnostic{d}, fs, JSONOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 1 {
		t.Fatalf("count = %d", out.Count)
	}
	got := out.Diagnostics[0]
	if got.Severity != "ERROR" || got.Code != diag.SynRedefinition.ID() || got.Hint == "" {
		t.Fatalf("unexpected primary %+v", got)
	}
	if got.Location != (LocationJSON{File: "switch.b", Line: 3, Column: 2, Width: 8}) {
		t.Fatalf("location %+v", got.Location)
	}
	if len(got.Secondary) != 1 || got.Secondary[0].Location.Line != 2 || got.Secondary[0].Severity != "INFO" {
		t.Fatalf("secondary %+v", got.Secondary)
	}
}

func TestJSONOptions(t *testing.T) {
	fs, d := duplicateDefault(t)
	out := BuildDiagnosticsOutput([]*diag.Diagnostic{d, d}, fs, JSONOpts{Max: 1, OmitSecondary: true})
	if out.Count != 1 || len(out.Diagnostics[0].Secondary) != 0 {
		t.Fatalf("options ignored: %+v", out)
	}
	empty := BuildDiagnosticsOutput(nil, fs, JSONOpts{})
	if empty.Diagnostics == nil || empty.Count != 0 {
		t.Fatal("empty output must still carry an array")
	}
}
