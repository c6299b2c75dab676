package version

import (
	"github.com/fatih/color"

	"lilt/internal/feature"
)

const release = "0.1.0-dev"

var (
	releaseColor = color.New(color.FgGreen, color.Bold)
	dialectColor = color.New(color.FgBlue)

	// Version pairs the CLI release with the newest dialect the feature
	// table can target. Overridable at build time via -ldflags.
	Version = releaseColor.Sprint(release) + " " + dialectColor.Sprint("py"+feature.Latest.String())

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Dialect is the newest target version the feature table knows; the
// "sys" target resolves to it.
func Dialect() string {
	return feature.Latest.String()
}
