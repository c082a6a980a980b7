package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bcplc/internal/diagfmt"
	"bcplc/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.b",
	Short: "Tokenize a BCPL source file",
	Long:  `Tokenize breaks a BCPL source file down into its tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Bool("trivia", false, "attach whitespace and comments to tokens")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if err = checkFormat(format); err != nil {
		return err
	}
	trivia, err := cmd.Flags().GetBool("trivia")
	if err != nil {
		return fmt.Errorf("failed to get trivia flag: %w", err)
	}
	opts, err := readOutputOptions(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(args[0], opts.maxDiagnostics, trivia)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		if err := printDiagnostics(os.Stderr, "pretty", result.Bag.Items(), result.FileSet, opts); err != nil {
			return err
		}
	}
	if format == "json" {
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens)
	}
	return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens)
}
