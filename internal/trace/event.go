package trace

import "time"

// Kind is what an event marks.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	KindHeartbeat
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
	KindHeartbeat: "heartbeat",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is the granularity of an event; coarser scopes have lower values and
// survive lower levels.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // CLI command and compile session
	ScopePass                    // load, lex, parse, render
	ScopeFile                    // per-file processing
	ScopeNode                    // top-level items inside a file
)

var scopeNames = [...]string{
	ScopeDriver: "driver",
	ScopePass:   "pass",
	ScopeFile:   "file",
	ScopeNode:   "node",
}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Event is one trace record. SpanID and ParentID are zero for events outside
// any span.
type Event struct {
	Time     time.Time
	Seq      uint64 // process-wide, increasing
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64
	GID      uint64 // goroutine that opened the span
	Name     string // "compile", "parse:main.b", "item"
	Detail   string
	Elapsed  time.Duration // span-end events only
	Extra    map[string]string
}
