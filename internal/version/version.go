package version

import (
	"strings"

	"github.com/fatih/color"
)

// Version information for the bcplc CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the compiler, checked against
	// the compiler constraint of a bcpl.toml manifest.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders the version with each component in its own color.
// Anything that is not a MAJOR.MINOR.PATCH core is printed as is.
func Colored(v string) string {
	core, rest := v, ""
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		core, rest = v[:i], v[i:]
	}
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return v
	}
	return majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2]) + rest
}
