package trace

import (
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq returns the next global event sequence number.
func NextSeq() uint64 { return seqCounter.Add(1) }

// NextSpanID returns a fresh, non-zero span ID.
func NextSpanID() uint64 { return spanCounter.Add(1) }

// getGoroutineID reads the goroutine number from the first stack line,
// "goroutine N [running]:". Zero when the line is not in that shape.
func getGoroutineID() uint64 {
	var buf [64]byte
	line := string(buf[:runtime.Stack(buf[:], false)])
	line, ok := strings.CutPrefix(line, "goroutine ")
	if !ok {
		return 0
	}
	num, _, _ := strings.Cut(line, " ")
	gid, err := strconv.ParseUint(num, 10, 64)
	if err != nil {
		return 0
	}
	return gid
}

// Span is an open begin/end pair. A span created while the scope is
// filtered out is inert: all methods are no-ops and ID returns 0.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	gid     uint64
	scope   Scope
	name    string
	started time.Time
	extra   map[string]string
	ended   atomic.Bool
}

var inert = &Span{}

func (s *Span) live() bool {
	return s != nil && s.tracer != nil && s.id != 0
}

// Begin emits a span-begin event under parent (0 for a root span).
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return inert
	}
	s := &Span{
		tracer:  t,
		id:      NextSpanID(),
		parent:  parent,
		gid:     getGoroutineID(),
		scope:   scope,
		name:    name,
		started: time.Now(),
	}
	ev := s.event(KindSpanBegin, s.started)
	t.Emit(&ev)
	return s
}

func (s *Span) event(kind Kind, at time.Time) Event {
	return Event{
		Time:     at,
		Seq:      NextSeq(),
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		GID:      s.gid,
		Name:     s.name,
	}
}

// End emits the span-end event carrying detail, the extras and the elapsed
// time. Only the first call emits.
func (s *Span) End(detail string) time.Duration {
	if !s.live() || s.ended.Swap(true) {
		return 0
	}
	now := time.Now()
	ev := s.event(KindSpanEnd, now)
	ev.Detail = detail
	ev.Extra = s.extra
	ev.Elapsed = now.Sub(s.started)
	s.tracer.Emit(&ev)
	return ev.Elapsed
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event.
func Point(t Tracer, scope Scope, name, detail string) {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(&Event{
		Time:   time.Now(),
		Seq:    NextSeq(),
		Kind:   KindPoint,
		Scope:  scope,
		GID:    getGoroutineID(),
		Name:   name,
		Detail: detail,
	})
}
