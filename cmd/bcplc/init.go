package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"bcplc/internal/project"
	"bcplc/internal/version"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new BCPL project",
	Long: `Initialize a project by creating a bcpl.toml manifest and a main.b entry file.
Without an argument the current directory is used; a missing directory is created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	target := wd
	if len(args) > 0 && args[0] != "." {
		target = args[0]
		if !filepath.IsAbs(target) {
			target = filepath.Join(wd, target)
		}
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "bcpl-project"
	}

	manifestPath := filepath.Join(target, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	if err := os.WriteFile(manifestPath, []byte(defaultManifest(name)), 0o600); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	mainPath := filepath.Join(target, "main"+project.SourceExt)
	createdMain := false
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(defaultMain), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", filepath.Base(mainPath), err)
		}
		createdMain = true
	}

	rel := target
	if r, err := filepath.Rel(wd, target); err == nil {
		rel = r
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized BCPL project in %s\n", rel)
	fmt.Fprintf(out, "  - %s\n", project.ManifestName)
	if createdMain {
		fmt.Fprintln(out, "  - main.b")
	} else {
		fmt.Fprintln(out, "  - main.b (existing)")
	}
	return nil
}

// defaultManifest requires at least the running compiler version.
func defaultManifest(name string) string {
	core, _, _ := strings.Cut(version.Version, "-")
	constraint := ">=" + core + "-0"
	return fmt.Sprintf(`[package]
name = %q
compiler = %q

[build]
kind = "executable"
sources = ["."]
`, name, constraint)
}

const defaultMain = `let main() be {
  writes("hello, world");
  return 0;
}
`
