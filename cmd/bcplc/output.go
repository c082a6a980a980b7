package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"bcplc/internal/diag"
	"bcplc/internal/diagfmt"
	"bcplc/internal/source"
)

// outputOptions gathers the persistent flags that shape what is printed.
type outputOptions struct {
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
	maxWarnings    int
	pathMode       diagfmt.PathMode
	showCodes      bool
}

func readOutputOptions(cmd *cobra.Command) (outputOptions, error) {
	pf := cmd.Root().PersistentFlags()
	var opts outputOptions

	colorFlag, err := pf.GetString("color")
	if err != nil {
		return opts, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(colorFlag) {
	case "on":
		opts.color = true
	case "off":
		opts.color = false
	case "auto", "":
		opts.color = isTerminal(os.Stderr)
	default:
		return opts, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}

	if opts.quiet, err = pf.GetBool("quiet"); err != nil {
		return opts, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if opts.timings, err = pf.GetBool("timings"); err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if opts.maxDiagnostics, err = pf.GetInt("max-diagnostics"); err != nil {
		return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if opts.maxWarnings, err = pf.GetInt("max-warnings"); err != nil {
		return opts, fmt.Errorf("failed to get max-warnings flag: %w", err)
	}
	if opts.showCodes, err = pf.GetBool("codes"); err != nil {
		return opts, fmt.Errorf("failed to get codes flag: %w", err)
	}
	mode, err := pf.GetString("path-mode")
	if err != nil {
		return opts, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	var ok bool
	if opts.pathMode, ok = diagfmt.ParsePathMode(mode); !ok {
		return opts, fmt.Errorf("invalid --path-mode value %q", mode)
	}
	return opts, nil
}

// printDiagnostics renders diags in format ("pretty" or "json").
func printDiagnostics(w io.Writer, format string, diags []*diag.Diagnostic, fs *source.FileSet, opts outputOptions) error {
	switch format {
	case "json":
		return diagfmt.JSON(w, diags, fs, diagfmt.JSONOpts{PathMode: opts.pathMode, Max: opts.maxDiagnostics})
	case "pretty", "":
		if len(diags) == 0 {
			return nil
		}
		return diagfmt.Pretty(w, diags, fs, diagfmt.PrettyOpts{
			Color:     opts.color,
			PathMode:  opts.pathMode,
			ShowCodes: opts.showCodes,
			Max:       opts.maxDiagnostics,
		})
	}
	return fmt.Errorf("unknown format: %s", format)
}

func checkFormat(format string) error {
	switch format {
	case "pretty", "json":
		return nil
	}
	return fmt.Errorf("unknown format %q (must be pretty or json)", format)
}
