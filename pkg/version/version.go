// Package version provides version information for the leakfix CLI tool.
package version

import (
	"fmt"
	"runtime"
)

// Release builds set these with -X leakfix/pkg/version.<Name>=<value>.
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// Info contains comprehensive version information.
type Info struct {
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
	Platform  string // GOOS/GOARCH
}

// Get returns the current version information.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns the one-line form printed by `leakfix version`.
func (i Info) String() string {
	return fmt.Sprintf(
		"leakfix version %s (commit: %s) built at %s with %s on %s",
		i.Version,
		i.GitCommit,
		i.BuildTime,
		i.GoVersion,
		i.Platform,
	)
}
