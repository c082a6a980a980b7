package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"bcplc/internal/diag"
	"bcplc/internal/source"
)

func duplicateDefault(t *testing.T) (*source.FileSet, *diag.Diagnostic) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("switch.b", []byte("switchon c into {\n  default: endcase;\n  default: endcase;\n}\n"))
	d := diag.NewError(diag.SynRedefinition, source.NewLocation(id, 3, 2, 8), "redefinition of default case").
		WithHint("a switchon may have only one default label").
		WithSecondary(diag.NewNote(source.NewLocation(id, 2, 2, 8), "first default case defined here"))
	return fs, d
}

func TestPrettyRendersTree(t *testing.T) {
	fs, d := duplicateDefault(t)
	var buf bytes.Buffer
	if err := PrettyOne(&buf, d, fs, PrettyOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"error switch.b:3:3: redefinition of default case",
		"    3 |   default: endcase;",
		"      |   ~~~~~~~~ <- hint: a switchon may have only one default label",
		"note switch.b:2:3: first default case defined here",
		"    2 |   default: endcase;",
		"      |   ~~~~~~~~",
		"",
	}, "\n")
	if buf.String() != want {
		t.Fatalf("output mismatch:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestPrettyShowCodesAndMax(t *testing.T) {
	fs, d := duplicateDefault(t)
	warn := diag.NewWarning(diag.SynExprWithoutSideEffect, source.NewLocation(d.Primary.File, 1, 9, 1), "expression without side effect")

	var buf bytes.Buffer
	if err := Pretty(&buf, []*diag.Diagnostic{d, warn}, fs, PrettyOpts{ShowCodes: true, Max: 1}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "redefinition of default case ["+diag.SynRedefinition.ID()+"]") {
		t.Fatalf("code missing:\n%s", out)
	}
	if strings.Contains(out, "first default case defined here [") {
		t.Fatalf("notes must not carry codes:\n%s", out)
	}
	if strings.Contains(out, "without side effect") || !strings.Contains(out, "1 more diagnostic") {
		t.Fatalf("max not applied:\n%s", out)
	}
}

func TestCaretAlignment(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("wide.b", []byte("x := \"日本\" + y\n\tz := 1\n"))

	cases := []struct {
		loc  source.Location
		want string
	}{
		// the two wide runes take four columns
		{source.NewLocation(id, 1, 12, 1), "      | " + strings.Repeat(" ", 14) + "~\n"},
		{source.NewLocation(id, 1, 5, 4), "      | " + strings.Repeat(" ", 5) + "~~~~~~\n"},
		{source.NewLocation(id, 2, 1, 1), "      | \t~\n"},
		// past the end of the line still gets one caret
		{source.NewLocation(id, 2, 7, 1), "      | \t" + strings.Repeat(" ", 6) + "~\n"},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		d := diag.NewError(diag.SynUnexpectedToken, tc.loc, "x")
		if err := PrettyOne(&buf, d, fs, PrettyOpts{}); err != nil {
			t.Fatal(err)
		}
		if !strings.HasSuffix(buf.String(), tc.want) {
			t.Fatalf("%v: got\n%q\nwant suffix %q", tc.loc, buf.String(), tc.want)
		}
	}
}

func TestPrettyWithoutSource(t *testing.T) {
	fs := source.NewFileSet()
	d := diag.NewError(diag.IOLoadFailed, source.Location{File: 9}, "cannot read")
	var buf bytes.Buffer
	if err := PrettyOne(&buf, d, fs, PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "error <unknown>: cannot read\n" {
		t.Fatalf("got %q", got)
	}
}

func TestPrettyWholeFileDiagnostic(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("good.b", []byte("let a = 1\n"))
	id := fs.AddUnreadable("missing.b")
	d := diag.NewError(diag.IOLoadFailed, source.Location{File: id}, "cannot read missing.b")
	var buf bytes.Buffer
	if err := PrettyOne(&buf, d, fs, PrettyOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "error missing.b: cannot read missing.b\n" {
		t.Fatalf("got %q", got)
	}
}

func TestPrettyColor(t *testing.T) {
	fs, d := duplicateDefault(t)
	var plain, colored bytes.Buffer
	_ = PrettyOne(&plain, d, fs, PrettyOpts{})
	_ = PrettyOne(&colored, d, fs, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatal("plain output contains escapes")
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatal("colored output has no escapes")
	}
}

func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/home/user/project")
	id := fs.AddVirtual("/home/user/project/src/test.b", []byte("x\n"))
	d := diag.NewError(diag.SynInfo, source.NewLocation(id, 1, 0, 1), "m")

	for mode, want := range map[PathMode]string{
		PathModeAbsolute: "/home/user/project/src/test.b:1:1",
		PathModeRelative: " src/test.b:1:1",
		PathModeBasename: " test.b:1:1",
	} {
		var buf bytes.Buffer
		_ = PrettyOne(&buf, d, fs, PrettyOpts{PathMode: mode})
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("mode %d: %q does not contain %q", mode, buf.String(), want)
		}
	}
	if m, ok := ParsePathMode("relative"); !ok || m != PathModeRelative {
		t.Fatal("ParsePathMode")
	}
	if _, ok := ParsePathMode("nope"); ok {
		t.Fatal("unknown mode accepted")
	}
}
