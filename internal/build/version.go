// Package build provides version and build information for li.
// This package intentionally has no dependencies on other internal packages
// to avoid import cycles.
package build

import (
	"fmt"
	"runtime"
)

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// IsDevBuild returns true if running a development build (not a release).
func IsDevBuild() bool {
	return Version == "dev"
}

// Info renders the multi-line version block printed by --version.
func Info() string {
	version := Version
	if IsDevBuild() {
		version += " (development build)"
	}
	return fmt.Sprintf("li %s\ncommit: %s\nbuilt: %s\ngo: %s\nplatform: %s/%s\n",
		version, Commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
