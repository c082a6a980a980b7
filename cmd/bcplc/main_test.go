package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bcplc/internal/driver"
	"bcplc/internal/project"
	"bcplc/internal/version"
)

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Errorf("invalid mode accepted")
	}
	if shouldUseTUI(uiModeAuto, true, 5) {
		t.Errorf("quiet runs must not use the progress view")
	}
	if !shouldUseTUI(uiModeOn, true, 1) || shouldUseTUI(uiModeOff, false, 9) {
		t.Errorf("explicit modes ignored")
	}
}

func TestDefaultManifestLoads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, project.ManifestName)
	if err := os.WriteFile(path, []byte(defaultManifest("demo")), 0o600); err != nil {
		t.Fatal(err)
	}
	m, err := project.LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m.Config.Package.Name != "demo" || m.Config.Build.Kind != "executable" {
		t.Fatalf("config = %+v", m.Config)
	}
	if err := m.CheckCompiler(version.Version); err != nil {
		t.Fatalf("generated constraint rejects the running compiler: %v", err)
	}
}

func TestCompilingPrinter(t *testing.T) {
	var buf bytes.Buffer
	sink := compilingPrinter(&buf)
	sink.OnEvent(driver.Event{File: "a.b", Stage: driver.StageLoad, Status: driver.StatusQueued})
	sink.OnEvent(driver.Event{File: "a.b", Stage: driver.StageParse, Status: driver.StatusWorking})
	sink.OnEvent(driver.Event{File: "a.b", Stage: driver.StageParse, Status: driver.StatusDone})
	sink.OnEvent(driver.Event{Stage: driver.StageParse, Status: driver.StatusWorking})
	if buf.String() != "Compiling: a.b\n" {
		t.Fatalf("output = %q", buf.String())
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func newRequest(sources ...string) *compileRequest {
	return &compileRequest{
		title:   "bcplc check",
		inputs:  compileInputs{sources: sources},
		opts:    outputOptions{quiet: false},
		format:  "pretty",
		ui:      uiModeOff,
		session: driver.SessionOptions{ProgramName: "bcplc", Jobs: 2},
	}
}

func TestCompileReportsFailure(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.b", "let main() be { return 0; }\n")
	bad := writeFile(t, dir, "bad.b", "let r() be { loop; }\n")

	var out bytes.Buffer
	_, err := compile(context.Background(), &out, newRequest(good, bad))
	if !errors.Is(err, errCompileFailed) {
		t.Fatalf("expected errCompileFailed, got %v", err)
	}
	for _, want := range []string{"Compiling: " + good, "Compiling: " + bad} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("missing %q in:\n%s", want, out.String())
		}
	}
}

func TestCompileWithoutInputs(t *testing.T) {
	var out bytes.Buffer
	_, err := compile(context.Background(), &out, newRequest())
	var fatal *driver.FatalError
	if !errors.As(err, &fatal) || err.Error() != "fatal error: no input files." {
		t.Fatalf("err = %v", err)
	}
}

func TestWriteOutline(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "m.b", "let start() = 1\n")
	req := newRequest(src)
	req.opts.quiet = true
	req.session.Tags = []string{"debug"}
	session, err := compile(context.Background(), &bytes.Buffer{}, req)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	path := filepath.Join(dir, "a.ast")
	if err := writeOutline(path, session); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.HasPrefix(text, "tag debug\n") || !strings.Contains(text, "start @1:0") {
		t.Fatalf("outline:\n%s", text)
	}
}

func TestJSONDiagnosticsGoToOutput(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.b", "let r() be { break; }\n")
	req := newRequest(bad)
	req.format = "json"
	var out bytes.Buffer
	if _, err := compile(context.Background(), &out, req); !errors.Is(err, errCompileFailed) {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(out.String(), "break outside loop") || strings.Contains(out.String(), "Compiling:") {
		t.Fatalf("json output:\n%s", out.String())
	}
}
