package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"bcplc/internal/driver"
)

// compileRequest carries everything check and build share.
type compileRequest struct {
	title   string
	inputs  compileInputs
	opts    outputOptions
	format  string
	ui      uiMode
	session driver.SessionOptions
}

func addCompileFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "pretty", "diagnostic format (pretty|json)")
	cmd.Flags().Int("jobs", 0, "max files parsed in parallel (0 = auto)")
	cmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
}

func readCompileRequest(cmd *cobra.Command, args []string) (*compileRequest, error) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return nil, fmt.Errorf("failed to get format flag: %w", err)
	}
	if err = checkFormat(format); err != nil {
		return nil, err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return nil, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return nil, fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return nil, err
	}
	opts, err := readOutputOptions(cmd)
	if err != nil {
		return nil, err
	}
	inputs, err := resolveInputs(args)
	if err != nil {
		return nil, err
	}
	return &compileRequest{
		title:  cmd.Root().Name() + " " + cmd.Name(),
		inputs: inputs,
		opts:   opts,
		format: format,
		ui:     mode,
		session: driver.SessionOptions{
			ProgramName: cmd.Root().Name(),
			Jobs:        jobs,
			MaxWarnings: opts.maxWarnings,
		},
	}, nil
}

// compile runs one session over the request's sources and prints its
// diagnostics. It returns errCompileFailed when any file failed.
func compile(ctx context.Context, out io.Writer, req *compileRequest) (*driver.Session, error) {
	useTUI := req.format == "pretty" && shouldUseTUI(req.ui, req.opts.quiet, len(req.inputs.sources))

	sessOpts := req.session
	var events chan driver.Event
	switch {
	case useTUI:
		events = make(chan driver.Event, 256)
		sessOpts.Progress = driver.ChannelSink{Ch: events}
	case !req.opts.quiet && req.format == "pretty":
		sessOpts.Progress = compilingPrinter(out)
	}

	session := driver.NewSession(sessOpts)
	session.AddSources(req.inputs.sources...)

	var (
		report *driver.Report
		err    error
	)
	if useTUI && len(req.inputs.sources) > 0 {
		report, err = runCompileWithUI(ctx, req.title, session, events)
	} else {
		report, err = session.Compile(ctx)
	}
	if err != nil {
		return session, err
	}

	diagOut := io.Writer(os.Stderr)
	if req.format == "json" {
		diagOut = out
	}
	if err := printDiagnostics(diagOut, req.format, report.Diagnostics(), session.FileSet(), req.opts); err != nil {
		return session, err
	}
	if req.opts.timings {
		printTimings(os.Stderr, session, report)
	}
	if report.Failed() {
		if !req.opts.quiet && req.format == "pretty" {
			failed, warnings := report.Counts()
			fmt.Fprintf(os.Stderr, "%d file(s) failed, %d warning(s)\n", failed, warnings)
		}
		return session, errCompileFailed
	}
	return session, nil
}

// compilingPrinter prints a "Compiling:" line as each file starts.
func compilingPrinter(out io.Writer) driver.ProgressSink {
	var mu sync.Mutex
	return driver.SinkFunc(func(ev driver.Event) {
		if ev.File == "" || ev.Stage != driver.StageParse || ev.Status != driver.StatusWorking {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(out, "Compiling: %s\n", ev.File)
	})
}
