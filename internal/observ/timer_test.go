package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	if r := tm.Report(); len(r.Phases) != 0 || r.TotalMS != 0 {
		t.Fatalf("empty timer reported %+v", r)
	}
	load := tm.Begin("load")
	time.Sleep(2 * time.Millisecond)
	tm.End(load, "3 file(s)")
	parse := tm.Begin("parse")
	tm.End(parse, "")
	tm.End(42, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 || r.Phases[0].Name != "load" || r.Phases[0].Note != "3 file(s)" {
		t.Fatalf("phases = %+v", r.Phases)
	}
	if r.Phases[0].DurationMS < 2 {
		t.Fatalf("load lasted %.3f ms", r.Phases[0].DurationMS)
	}
	if r.TotalMS < r.Phases[0].DurationMS {
		t.Fatalf("total %.3f below a phase", r.TotalMS)
	}

	s := tm.Summary()
	if !strings.HasPrefix(s, "timings:\n") || !strings.Contains(s, "// 3 file(s)") || !strings.Contains(s, "  total ") {
		t.Fatalf("summary:\n%s", s)
	}
}
