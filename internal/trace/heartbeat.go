package trace

import (
	"fmt"
	"runtime"
	"sync"
	"time"
)

// Heartbeat emits a liveness event at a fixed interval. A trace that keeps
// beating without span ends points at a stuck parse; the detail carries
// goroutine and heap figures to tell a hang from a slow run.
type Heartbeat struct {
	tracer   Tracer
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
	once     sync.Once
}

// StartHeartbeat returns nil when tracing is disabled or interval <= 0.
func StartHeartbeat(tracer Tracer, interval time.Duration) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{
		tracer:   tracer,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *Heartbeat) run() {
	defer close(h.done)
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	var beats uint64
	var mem runtime.MemStats
	for {
		select {
		case <-ticker.C:
			beats++
			runtime.ReadMemStats(&mem)
			h.tracer.Emit(&Event{
				Time:   time.Now(),
				Seq:    NextSeq(),
				Kind:   KindHeartbeat,
				Scope:  ScopeDriver,
				GID:    getGoroutineID(),
				Name:   "heartbeat",
				Detail: fmt.Sprintf("#%d goroutines=%d heap=%dKiB", beats, runtime.NumGoroutine(), mem.HeapAlloc/1024),
			})
		case <-h.stop:
			return
		}
	}
}

// Stop ends the heartbeat and waits for the goroutine. Safe on nil and
// when called twice.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	<-h.done
}
