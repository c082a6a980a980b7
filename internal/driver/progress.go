package driver

import "time"

// Stage describes what a session is doing with a file.
type Stage string

const (
	StageLoad  Stage = "load"
	StageParse Stage = "parse"
	// StageCache marks a file whose result came from the cache.
	StageCache Stage = "cache"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for a file, or for the whole session when File is empty.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Elapsed time.Duration
	// Warnings is set on the final event of a file.
	Warnings int
}

// ProgressSink consumes progress events. Events for different files may be
// delivered from different goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// SinkFunc adapts a function to ProgressSink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(ev Event) { f(ev) }

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}
