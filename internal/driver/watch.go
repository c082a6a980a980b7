package driver

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// Watch calls fn with the changed files each time one of paths is modified.
// Bursts of events closer than debounce are coalesced into one call. Watch
// blocks until ctx is cancelled or the watcher fails.
func Watch(ctx context.Context, paths []string, debounce time.Duration, fn func(changed []string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	watched := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	// Editors often replace files by renaming, which drops a watch on the
	// file itself; directories survive that.
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return err
		}
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]bool)
		timer   *time.Timer
	)
	flush := func() {
		mu.Lock()
		changed := make([]string, 0, len(pending))
		for p := range pending {
			changed = append(changed, p)
		}
		clear(pending)
		mu.Unlock()
		if len(changed) == 0 || ctx.Err() != nil {
			return
		}
		sort.Strings(changed)
		fn(changed)
	}
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&watchOps == 0 {
				continue
			}
			name, err := filepath.Abs(ev.Name)
			if err != nil || !watched[name] {
				continue
			}
			mu.Lock()
			pending[name] = true
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, flush)
			mu.Unlock()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}
