package driver

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"bcplc/internal/diag"
	"bcplc/internal/diagfmt"
	"bcplc/internal/source"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestCompileWithoutSourcesIsFatal(t *testing.T) {
	_, err := NewSession(SessionOptions{}).Compile(context.Background())
	var fatal *FatalError
	if !errors.As(err, &fatal) {
		t.Fatalf("expected FatalError, got %v", err)
	}
	if err.Error() != "fatal error: no input files." {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestCompileKeepsInputOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i, name := range []string{"c.b", "a.b", "b.b"} {
		body := "let f" + string(rune('0'+i)) + "(x) = x + 1\nlet g" + string(rune('0'+i)) + " = 2\n"
		paths = append(paths, writeSource(t, dir, name, body))
	}
	s := NewSession(SessionOptions{Jobs: 3})
	s.AddSources(paths...)
	rep, err := s.Compile(context.Background())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if rep.Failed() {
		t.Fatalf("unexpected failure: %v", rep.Diagnostics())
	}
	var names []string
	for _, it := range s.Program().Items() {
		names = append(names, it.Name.Value)
	}
	if got := strings.Join(names, ","); got != "f0,g0,f1,g1,f2,g2" {
		t.Fatalf("program order = %s", got)
	}
	for i, o := range rep.Outcomes {
		if o.Path != paths[i] || len(o.Items) != 2 || len(o.Names) != 2 {
			t.Fatalf("outcome %d: %+v", i, o)
		}
	}
}

func TestCompileAggregatesFailures(t *testing.T) {
	dir := t.TempDir()
	good := writeSource(t, dir, "good.b", "let main() be { return 0; }\n")
	warn := writeSource(t, dir, "warn.b", "let r() be { x + 1; }\n")
	bad := writeSource(t, dir, "bad.b", "let r() be { endcase; }\n")
	missing := filepath.Join(dir, "missing.b")

	var mu sync.Mutex
	var events []Event
	s := NewSession(SessionOptions{Progress: SinkFunc(func(ev Event) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
	})})
	s.AddSources(good, warn, bad, missing)
	rep, err := s.Compile(context.Background())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !rep.Failed() {
		t.Fatalf("report must fail")
	}
	failed, warnings := rep.Counts()
	if failed != 2 || warnings != 1 {
		t.Fatalf("counts = %d failed, %d warnings", failed, warnings)
	}
	if !rep.Outcomes[0].OK() || !rep.Outcomes[1].OK() {
		t.Fatalf("good files must succeed")
	}
	if rep.Outcomes[2].Err == nil || !strings.Contains(rep.Outcomes[2].Err.Message, "endcase outside switchon") {
		t.Fatalf("bad.b: %v", rep.Outcomes[2].Err)
	}
	loadErr := rep.Outcomes[3].Err
	if loadErr == nil || loadErr.Code != diag.IOLoadFailed || !strings.Contains(loadErr.Message, missing) {
		t.Fatalf("missing.b: %v", loadErr)
	}

	ds := rep.Diagnostics()
	if len(ds) != 3 || ds[0].Severity != diag.SevWarning || ds[1].Code != rep.Outcomes[2].Err.Code || ds[2] != loadErr {
		t.Fatalf("diagnostics out of order: %v", ds)
	}
	// Items of failed files never reach the program.
	if s.Program().Len() != 2 {
		t.Fatalf("program holds %d items", s.Program().Len())
	}

	mu.Lock()
	defer mu.Unlock()
	seen := map[string]Status{}
	warned := map[string]int{}
	for _, ev := range events {
		if ev.File != "" && ev.Stage == StageParse && ev.Status != StatusWorking {
			seen[ev.File] = ev.Status
			warned[ev.File] = ev.Warnings
		}
	}
	if warned[warn] != 1 || warned[good] != 0 {
		t.Fatalf("warning counts in events = %v", warned)
	}
	if seen[good] != StatusDone || seen[bad] != StatusError {
		t.Fatalf("progress statuses = %v", seen)
	}
	last := events[len(events)-1]
	if last.File != "" || last.Status != StatusError {
		t.Fatalf("final event = %+v", last)
	}
}

func TestCompileRendersLoadFailureUnderItsOwnPath(t *testing.T) {
	dir := t.TempDir()
	good := writeSource(t, dir, "good.b", "let a = 1\n")
	missing := filepath.Join(dir, "missing.b")
	s := NewSession(SessionOptions{})
	s.AddSources(good, missing)
	rep, err := s.Compile(context.Background())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	loadErr := rep.Outcomes[1].Err
	if loadErr == nil || loadErr.Primary.File != rep.Outcomes[1].File || loadErr.Primary.File == rep.Outcomes[0].File {
		t.Fatalf("load error anchored at %+v", loadErr)
	}
	if f := s.FileSet().Get(loadErr.Primary.File); f == nil || f.Flags&source.FileUnreadable == 0 {
		t.Fatalf("placeholder not registered: %+v", f)
	}

	var buf bytes.Buffer
	if err := diagfmt.Pretty(&buf, rep.Diagnostics(), s.FileSet(), diagfmt.PrettyOpts{PathMode: diagfmt.PathModeBasename}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "error missing.b: cannot read "+missing) || strings.Contains(out, "good.b") {
		t.Fatalf("rendered:\n%s", out)
	}
}

func TestCompileHonoursCancellation(t *testing.T) {
	dir := t.TempDir()
	s := NewSession(SessionOptions{})
	s.AddSources(writeSource(t, dir, "a.b", "let a = 1\n"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Compile(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}

func TestCompileUsesCache(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "warn.b", "let r() be { x + 1; }\nlet k = 3\n")
	disk, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}

	first := NewSession(SessionOptions{Cache: disk})
	first.AddSources(path)
	rep, err := first.Compile(context.Background())
	if err != nil || rep.Failed() {
		t.Fatalf("first compile: %v %v", err, rep)
	}
	if rep.Outcomes[0].Cached {
		t.Fatalf("cold cache reported a hit")
	}

	second := NewSession(SessionOptions{Cache: NewMemoryCache(4, disk)})
	// Shift file ids so replayed warnings have to be rebased.
	second.FileSet().AddVirtual("padding.b", []byte("let p = 0\n"))
	second.AddSources(path)
	rep, err = second.Compile(context.Background())
	if err != nil || rep.Failed() {
		t.Fatalf("second compile: %v %v", err, rep)
	}
	o := rep.Outcomes[0]
	if !o.Cached {
		t.Fatalf("expected a cache hit")
	}
	if strings.Join(o.Names, ",") != "r,k" {
		t.Fatalf("cached names = %v", o.Names)
	}
	if len(o.Warnings) != 1 || o.Warnings[0].Primary.File != o.File || o.File == source.FileID(0) {
		t.Fatalf("replayed warnings = %+v (file %d)", o.Warnings, o.File)
	}
	if second.Program().Len() != 0 {
		t.Fatalf("cached files must not add items")
	}
}

func TestCompileDoesNotCacheFailures(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "bad.b", "let r() be { break; }\n")
	mem := NewMemoryCache(0, nil)
	s := NewSession(SessionOptions{Cache: mem})
	s.AddSources(path)
	rep, err := s.Compile(context.Background())
	if err != nil || !rep.Failed() {
		t.Fatalf("expected failure, got %v %v", err, rep)
	}
	if mem.Len() != 0 {
		t.Fatalf("failed file was cached")
	}
}

func TestSessionAccessors(t *testing.T) {
	s := NewSession(SessionOptions{Output: "prog", Kind: BuildObject, Tags: []string{"debug"}})
	s.DefineTag("fast")
	if s.ProgramName() != "bcplc" {
		t.Fatalf("default program name = %q", s.ProgramName())
	}
	if strings.Join(s.Tags(), ",") != "debug,fast" {
		t.Fatalf("tags = %v", s.Tags())
	}
	if out, err := s.OutputFile(); err != nil || out != "prog" {
		t.Fatalf("explicit output = %q, %v", out, err)
	}
	s = NewSession(SessionOptions{Kind: BuildSharedObject, GOOS: "windows"})
	if out, _ := s.OutputFile(); out != "a.dll" {
		t.Fatalf("default output = %q", out)
	}
}
