package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"bcplc/internal/ast"
	"bcplc/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.b",
	Short: "Parse a BCPL source file and report diagnostics",
	Long:  `Parse runs the statement parser over one file, prints its diagnostics and optionally an outline of the parsed definitions`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "diagnostic format (pretty|json)")
	parseCmd.Flags().Bool("dump", false, "print an outline of the parsed definitions")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if err = checkFormat(format); err != nil {
		return err
	}
	dump, err := cmd.Flags().GetBool("dump")
	if err != nil {
		return fmt.Errorf("failed to get dump flag: %w", err)
	}
	opts, err := readOutputOptions(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Parse(cmd.Context(), args[0], opts.maxWarnings)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	diagOut := io.Writer(os.Stderr)
	if format == "json" {
		diagOut = cmd.OutOrStdout()
	}
	if err := printDiagnostics(diagOut, format, result.Diagnostics(), result.FileSet, opts); err != nil {
		return err
	}
	if !result.Result.OK() {
		return errCompileFailed
	}
	if dump && format == "pretty" {
		return dumpProgram(cmd.OutOrStdout(), result.Program)
	}
	return nil
}

func dumpProgram(w io.Writer, prog *ast.Program) error {
	items := prog.Items()
	for i := range items {
		if err := ast.Dump(w, &items[i]); err != nil {
			return err
		}
	}
	return nil
}
