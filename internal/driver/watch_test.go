package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchReportsChanges(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "w.b", "let a = 1\n")
	other := writeSource(t, dir, "other.txt", "x")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes := make(chan []string, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, []string{path}, 20*time.Millisecond, func(changed []string) {
			changes <- changed
		})
	}()

	// Give the watcher time to register before touching files.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(other, []byte("y"), 0o600); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("let a = 2\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	abs, _ := filepath.Abs(path)
	select {
	case got := <-changes:
		if len(got) != 1 || got[0] != abs {
			t.Fatalf("changed = %v", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("watch: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("watch did not stop")
	}
}
