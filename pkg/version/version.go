// Package version provides build and version information for htmldicts.
package version

import (
	"fmt"
	"runtime"
)

// Version is set via ldflags at build time:
//
//	-X github.com/setia/htmldicts/pkg/version.Version=$(VERSION)
var Version = "dev"

// Build information set via ldflags.
var (
	Commit = "unknown"
	Date   = "unknown"

	// GoVersion is the toolchain that built the binary.
	GoVersion = runtime.Version()
)

// BuildInfo is version information for JSON output.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// String returns the one-line version banner.
func String() string {
	return fmt.Sprintf("htmldicts %s (commit: %s, built: %s, go: %s)",
		Version, Commit, Date, GoVersion)
}

// Short returns just the version.
func Short() string {
	return Version
}

// GetInfo returns structured version information.
func GetInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}
