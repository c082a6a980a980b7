package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"bcplc/internal/driver"
	"bcplc/internal/ui"
)

type compileOutcome struct {
	report *driver.Report
	err    error
}

// runCompileWithUI compiles while a progress view consumes the session's
// events. The session must have been created with a ChannelSink on events.
func runCompileWithUI(ctx context.Context, title string, session *driver.Session, events chan driver.Event) (*driver.Report, error) {
	outcomeCh := make(chan compileOutcome, 1)
	go func() {
		rep, err := session.Compile(ctx)
		close(events)
		outcomeCh <- compileOutcome{report: rep, err: err}
	}()

	model := ui.NewProgressModel(title, session.Sources(), events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout), tea.WithContext(ctx))
	_, uiErr := program.Run()
	if uiErr != nil {
		// Keep draining so the compile goroutine is never blocked on a send.
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.report, uiErr
	}
	return outcome.report, outcome.err
}
