package trace

import (
	"io"
	"sync"
)

// RingTracer keeps the last N events in memory. When created with a dump
// writer it writes them out on Close, so --trace-mode=ring records only the
// tail of a long session.
type RingTracer struct {
	gate
	mu     sync.RWMutex
	events []Event
	head   int // next write position
	full   bool

	out    io.Writer
	format Format
	closed bool
}

func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingTracer{gate: gate{level: level}, events: make([]Event, capacity)}
}

// DumpOnClose makes Close write the buffered events to w in format.
func (t *RingTracer) DumpOnClose(w io.Writer, format Format) *RingTracer {
	t.out, t.format = w, format
	return t
}

func (t *RingTracer) Emit(ev *Event) {
	if !t.accepts(ev) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events[t.head] = *ev
	t.head = (t.head + 1) % len(t.events)
	if t.head == 0 {
		t.full = true
	}
}

// Snapshot returns the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.full {
		return append([]Event(nil), t.events[:t.head]...)
	}
	out := make([]Event, 0, len(t.events))
	out = append(out, t.events[t.head:]...)
	return append(out, t.events[:t.head]...)
}

func (t *RingTracer) Dump(w io.Writer, format Format) error {
	events := t.Snapshot()
	for i := range events {
		if _, err := w.Write(FormatEvent(&events[i], format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error { return nil }

// Close dumps the buffer once when a dump writer was set.
func (t *RingTracer) Close() error {
	t.mu.Lock()
	if t.closed || t.out == nil {
		t.closed = true
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	t.mu.Unlock()

	if err := t.Dump(t.out, t.format); err != nil {
		return err
	}
	return closeOutput(t.out)
}
