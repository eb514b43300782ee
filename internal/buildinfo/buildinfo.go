// Package buildinfo holds the version metadata stamped into the binary.
//
// Release builds inject the values through -ldflags into cmd/lazystatus and
// main() forwards them with Set before anything queries them. Builds made
// with a plain `go build` keep the defaults until Enrich recovers what it
// can from the module's embedded build info.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Values reported when the linker stamped nothing.
const (
	defaultVersion = "dev"
	defaultCommit  = "none"
	defaultDate    = "unknown"
	defaultBuiltBy = "unknown"
)

type stamp struct {
	version string
	commit  string
	date    string
	builtBy string
}

var current = stamp{
	version: defaultVersion,
	commit:  defaultCommit,
	date:    defaultDate,
	builtBy: defaultBuiltBy,
}

// Set records the linker-injected values.
func Set(version, commit, date, builtBy string) {
	current = stamp{version: version, commit: commit, date: date, builtBy: builtBy}
}

// Version reports the release tag, or "dev" for local builds.
func Version() string { return current.version }

// Commit reports the VCS revision the binary was built from.
func Commit() string { return current.commit }

// Date reports the build timestamp.
func Date() string { return current.date }

// BuiltBy reports what produced the binary, e.g. "goreleaser".
func BuiltBy() string { return current.builtBy }

// Summary formats the multi-line report printed by --version.
func Summary(appName string) string {
	return fmt.Sprintf("%s version %s\ncommit: %s\nbuilt at: %s\nbuilt by: %s\n",
		appName, current.version, current.commit, current.date, current.builtBy)
}

// Enrich backfills commit and builtBy from the build info Go embeds in
// module-aware binaries. Stamped values always win.
func Enrich() {
	if current.commit != defaultCommit && current.builtBy != defaultBuiltBy {
		return
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if current.commit == defaultCommit {
		if rev := vcsRevision(bi); rev != "" {
			current.commit = rev
		}
	}
	if current.builtBy == defaultBuiltBy {
		current.builtBy = bi.GoVersion
	}
}

func vcsRevision(bi *debug.BuildInfo) string {
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}
