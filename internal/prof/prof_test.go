package prof

import (
	"os"
	"path/filepath"
	"testing"
)

func TestProfileWritesFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		CPU:   filepath.Join(dir, "cpu.pprof"),
		Mem:   filepath.Join(dir, "mem.pprof"),
		Trace: filepath.Join(dir, "run.trace"),
	}
	if !cfg.Enabled() {
		t.Fatalf("config should be enabled")
	}
	p, err := Start(cfg)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := p.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if err := p.Stop(); err != nil {
		t.Fatalf("second stop: %v", err)
	}
	for _, path := range []string{cfg.CPU, cfg.Mem, cfg.Trace} {
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Fatalf("%s not written: %v", filepath.Base(path), err)
		}
	}
}

func TestStartFailsOnBadPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no", "such", "dir", "cpu.pprof")
	if _, err := Start(Config{CPU: missing}); err == nil {
		t.Fatalf("expected an error")
	}
	if (Config{}).Enabled() {
		t.Fatalf("empty config must be disabled")
	}
}
