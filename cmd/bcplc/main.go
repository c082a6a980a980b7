package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"bcplc/internal/version"
)

// errCompileFailed is returned once diagnostics were printed; main only
// sets the exit status for it.
var errCompileFailed = errors.New("compilation failed")

var rootCmd = &cobra.Command{
	Use:           "bcplc",
	Short:         "BCPL compiler front end",
	Long:          `bcplc parses BCPL source files and reports diagnostics with source excerpts`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var traceCleanup, profileCleanup func()

func cleanupAll() {
	if traceCleanup != nil {
		traceCleanup()
	}
	if profileCleanup != nil {
		profileCleanup()
	}
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to show (0 = all)")
	pf.Int("max-warnings", 0, "maximum number of warnings kept per file (0 = all)")
	pf.String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
	pf.Bool("codes", false, "append diagnostic codes to messages")
	pf.String("trace", "", "write a trace to this file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.Int("trace-ring-size", 4096, "events kept in ring mode")
	pf.Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 = off)")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to this file")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		traceCleanup = cleanup
		profileCleanup, err = setupProfiling(cmd)
		return err
	}
	rootCmd.PersistentPostRun = func(*cobra.Command, []string) { cleanupAll() }

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		cleanupAll()
		if !errors.Is(err, errCompileFailed) {
			fmt.Fprintf(os.Stderr, "%s: %v\n", rootCmd.Name(), err)
		}
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
