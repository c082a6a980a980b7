package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
)

// Manifest is a loaded bcpl.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
}

type PackageConfig struct {
	Name string `toml:"name"`
	// Compiler is a semver constraint the running compiler must satisfy.
	Compiler string `toml:"compiler"`
}

type BuildConfig struct {
	Kind    string   `toml:"kind"`
	Output  string   `toml:"output"`
	Tags    []string `toml:"tags"`
	Sources []string `toml:"sources"`
}

// Load finds bcpl.toml from startDir upwards and decodes it.
// ok is false when no manifest exists.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := LoadFile(path)
	return m, true, err
}

// LoadFile decodes and validates the manifest at path.
func LoadFile(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return nil, fmt.Errorf("%s: missing [package].name", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	if c := strings.TrimSpace(cfg.Package.Compiler); c != "" {
		if _, err := semver.NewConstraint(c); err != nil {
			return nil, fmt.Errorf("%s: invalid [package].compiler %q: %w", path, c, err)
		}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return &Manifest{Path: abs, Root: filepath.Dir(abs), Config: cfg}, nil
}

// CheckCompiler verifies that version satisfies [package].compiler.
// A manifest without a constraint accepts any compiler.
func (m *Manifest) CheckCompiler(version string) error {
	constraint := strings.TrimSpace(m.Config.Package.Compiler)
	if constraint == "" {
		return nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("%s: invalid [package].compiler %q: %w", m.Path, constraint, err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("compiler version %q is not a semantic version: %w", version, err)
	}
	if ok, reasons := c.Validate(v); !ok {
		msg := fmt.Sprintf("%s requires compiler %s, running %s", m.Config.Package.Name, constraint, v)
		if len(reasons) > 0 {
			msg += ": " + reasons[0].Error()
		}
		return fmt.Errorf("%s", msg)
	}
	return nil
}

// SourcePaths returns the configured sources resolved against the project
// root. Without a [build].sources entry the whole root is used.
func (m *Manifest) SourcePaths() []string {
	if len(m.Config.Build.Sources) == 0 {
		return []string{m.Root}
	}
	out := make([]string, 0, len(m.Config.Build.Sources))
	for _, s := range m.Config.Build.Sources {
		if filepath.IsAbs(s) {
			out = append(out, s)
			continue
		}
		out = append(out, filepath.Join(m.Root, filepath.FromSlash(s)))
	}
	return out
}
