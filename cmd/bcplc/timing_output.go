package main

import (
	"fmt"
	"io"
	"time"

	"bcplc/internal/driver"
)

// printTimings writes the session phases and the slowest files.
func printTimings(out io.Writer, session *driver.Session, report *driver.Report) {
	fmt.Fprint(out, session.TimingSummary())
	var cached int
	for i := range report.Outcomes {
		o := &report.Outcomes[i]
		if o.Cached {
			cached++
			continue
		}
		fmt.Fprintf(out, "  %-20s %7.2f ms\n", o.Path, toMillis(o.Elapsed))
	}
	if cached > 0 {
		fmt.Fprintf(out, "  %d file(s) from cache\n", cached)
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
