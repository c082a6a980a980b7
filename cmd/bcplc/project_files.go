package main

import (
	"fmt"

	"bcplc/internal/project"
	"bcplc/internal/version"
)

// compileInputs is what a check or build works on: the expanded source
// list plus the manifest that supplied defaults, if any.
type compileInputs struct {
	manifest *project.Manifest
	sources  []string
}

// resolveInputs expands the command arguments into source files. With no
// arguments the sources listed by bcpl.toml are used.
func resolveInputs(args []string) (compileInputs, error) {
	var in compileInputs
	manifest, ok, err := project.Load(".")
	if err != nil {
		return in, err
	}
	if ok {
		if err := manifest.CheckCompiler(version.Version); err != nil {
			return in, err
		}
		in.manifest = manifest
	}

	paths := args
	if len(paths) == 0 && in.manifest != nil {
		paths = in.manifest.SourcePaths()
	}
	in.sources, err = project.CollectSources(paths)
	if err != nil {
		return in, fmt.Errorf("failed to collect sources: %w", err)
	}
	return in, nil
}

// projectName is the manifest package name, or "" without a manifest.
func (in compileInputs) projectName() string {
	if in.manifest == nil {
		return ""
	}
	return in.manifest.Config.Package.Name
}
