// Package buildinfo is the process-wide home for build metadata. cmd's main
// copies its ldflags-injected values here at startup so subcommands never
// need linker flags of their own to read them.
package buildinfo

import (
	"runtime"
	"runtime/debug"
)

var (
	Version   = "dev"
	Commit    = "unknown"
	Date      = "unknown"
	GoVersion = "unknown"
)

// OS reports the platform this binary was built for.
func OS() string { return runtime.GOOS }

// Arch reports the architecture this binary was built for.
func Arch() string { return runtime.GOARCH }

// Resolve fills any still-defaulted fields from the binary's embedded module
// info, covering `go install` builds that skip the ldflags path.
func Resolve() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if GoVersion == "unknown" {
		GoVersion = info.GoVersion
	}
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
}
