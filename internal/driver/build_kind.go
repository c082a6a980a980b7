package driver

import (
	"fmt"
	"strings"
)

// BuildKind selects the artifact a build produces.
type BuildKind uint8

const (
	BuildExecutable BuildKind = iota
	BuildObject
	BuildSharedObject
)

func (k BuildKind) String() string {
	switch k {
	case BuildObject:
		return "object"
	case BuildSharedObject:
		return "shared-object"
	default:
		return "executable"
	}
}

// ParseBuildKind accepts the names used by the CLI and bcpl.toml.
func ParseBuildKind(s string) (BuildKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "exe", "executable":
		return BuildExecutable, nil
	case "obj", "object":
		return BuildObject, nil
	case "so", "shared", "shared-object":
		return BuildSharedObject, nil
	}
	return BuildExecutable, fmt.Errorf("unknown build kind %q (must be executable, object or shared-object)", s)
}

var unixLike = map[string]bool{
	"linux": true, "darwin": true, "freebsd": true, "netbsd": true, "openbsd": true,
	"dragonfly": true, "solaris": true, "illumos": true, "aix": true, "android": true, "ios": true,
}

// Ext returns the file extension of the artifact on goos.
func (k BuildKind) Ext(goos string) (string, error) {
	switch {
	case goos == "windows":
		return [...]string{".exe", ".lib", ".dll"}[k], nil
	case unixLike[goos]:
		return [...]string{"", ".o", ".so"}[k], nil
	}
	return "", fmt.Errorf("unsupported operating system %q", goos)
}

// OutputName returns explicit when set, else "a" with the extension of kind on goos.
func OutputName(explicit string, kind BuildKind, goos string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	ext, err := kind.Ext(goos)
	if err != nil {
		return "", err
	}
	return "a" + ext, nil
}
