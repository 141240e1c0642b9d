// Package buildinfo reports which mandelview binary is running.
//
// Release builds stamp Version and Commit with ldflags:
//
//	go build -ldflags "-X github.com/marben/canvas_mandel/internal/buildinfo.Version=v1.0.0 \
//	    -X github.com/marben/canvas_mandel/internal/buildinfo.Commit=$(git rev-parse HEAD)" ./cmd/mandelview
//
// Binaries built without them, e.g. by "go install ...@v1.0.0", report the
// module version and VCS revision the toolchain recorded.
package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"
)

// Info returns the stamped version and commit, falling back to the
// embedded build information for unstamped fields.
func Info() (version, commit string) {
	version, commit = Version, Commit

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return version, commit
	}
	if version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		version = bi.Main.Version
	}
	if commit == "none" {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				commit = s.Value
			}
		}
	}
	return version, commit
}

// Template returns the version template for cobra,
// e.g. "mandelview v1.0.0 (3f2a9c1, go1.25.5)".
func Template() string {
	version, commit := Info()
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("{{.Name}} %s (%s, %s)\n", version, commit, runtime.Version())
}
