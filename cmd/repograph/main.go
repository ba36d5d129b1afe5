// Package main is the entry point for the repograph CLI tool.
package main

import (
	"os"

	"github.com/repograph/repograph/internal/buildinfo"
	"github.com/repograph/repograph/internal/cli"
)

// Build-time metadata injected via ldflags; copied into internal/buildinfo
// at process start so every package can read it through one shared surface.
var (
	version   = "dev"
	commit    = "none"
	date      = "unknown"
	goVersion = "unknown"
)

func main() {
	buildinfo.Version = version
	buildinfo.Commit = commit
	buildinfo.Date = date
	buildinfo.GoVersion = goVersion
	buildinfo.Resolve()

	os.Exit(cli.Execute())
}
