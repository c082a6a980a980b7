package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // heartbeats only; errors reach the user as diagnostics
	LevelPhase               // compile session and passes
	LevelDetail              // plus one span per file
	LevelDebug               // plus top-level items
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

// deepest scope each level lets through; 0 lets nothing through
var levelDepth = [...]Scope{0, 0, ScopePass, ScopeFile, ScopeNode}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel maps a --trace-level value to a Level, ignoring case.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope pass at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(levelDepth) {
		return false
	}
	return scope != 0 && scope <= levelDepth[l]
}

// gate is the level filter shared by the concrete tracers.
type gate struct {
	level Level
}

func (g gate) Level() Level  { return g.level }
func (g gate) Enabled() bool { return g.level > LevelOff }

// accepts lets heartbeats through at any enabled level.
func (g gate) accepts(ev *Event) bool {
	if ev.Kind == KindHeartbeat {
		return g.Enabled()
	}
	return g.level.ShouldEmit(ev.Scope)
}
