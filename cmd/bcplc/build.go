package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bcplc/internal/driver"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [files|dirs...]",
	Short: "Compile BCPL sources into an artifact",
	Long: `Build parses the sources like check and, when every file succeeds, writes the
outline of the parsed program next to the artifact name as <output>.ast.
Defaults for --kind, -o and --tag come from the [build] table of bcpl.toml.`,
	RunE: runBuild,
}

func init() {
	addCompileFlags(buildCmd)
	buildCmd.Flags().String("kind", "executable", "artifact kind (executable|object|shared-object)")
	buildCmd.Flags().StringP("output", "o", "", "artifact name (default a, a.o or a.so; a.exe, a.lib or a.dll on windows)")
	buildCmd.Flags().StringSlice("tag", nil, "define a build tag (repeatable)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	req, err := readCompileRequest(cmd, args)
	if err != nil {
		return err
	}

	kindValue, err := cmd.Flags().GetString("kind")
	if err != nil {
		return fmt.Errorf("failed to get kind flag: %w", err)
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	tags, err := cmd.Flags().GetStringSlice("tag")
	if err != nil {
		return fmt.Errorf("failed to get tag flag: %w", err)
	}
	if m := req.inputs.manifest; m != nil {
		b := m.Config.Build
		if !cmd.Flags().Changed("kind") && b.Kind != "" {
			kindValue = b.Kind
		}
		if !cmd.Flags().Changed("output") && b.Output != "" {
			output = b.Output
		}
		if !cmd.Flags().Changed("tag") {
			tags = append(tags, b.Tags...)
		}
	}
	kind, err := driver.ParseBuildKind(kindValue)
	if err != nil {
		return err
	}
	req.session.Kind = kind
	req.session.Output = output
	req.session.Tags = tags

	session, err := compile(cmd.Context(), cmd.OutOrStdout(), req)
	if err != nil {
		return err
	}
	artifact, err := session.OutputFile()
	if err != nil {
		return err
	}
	if err := writeOutline(artifact+".ast", session); err != nil {
		return fmt.Errorf("failed to write %s.ast: %w", artifact, err)
	}
	if !req.opts.quiet && req.format == "pretty" {
		fmt.Fprintf(cmd.OutOrStdout(), "built %s (%s, %d definition(s))\n", artifact+".ast", session.Kind(), session.Program().Len())
	}
	return nil
}

func writeOutline(path string, session *driver.Session) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	w := bufio.NewWriter(f)
	for _, tag := range session.Tags() {
		if _, err := fmt.Fprintf(w, "tag %s\n", tag); err != nil {
			return err
		}
	}
	if err := dumpProgram(w, session.Program()); err != nil {
		return err
	}
	return w.Flush()
}
