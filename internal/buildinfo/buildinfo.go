// Package buildinfo holds the version metadata injected into the lazymd binary
// by the linker and forwarded here from main.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Info describes one build of lazymd.
type Info struct {
	Version string
	Commit  string
	Date    string
	BuiltBy string
}

var current = Info{
	Version: "dev",
	Commit:  "none",
	Date:    "unknown",
	BuiltBy: "unknown",
}

// Set stores the linker-provided build metadata.
func Set(version, commit, date, builtBy string) {
	current = Info{Version: version, Commit: commit, Date: date, BuiltBy: builtBy}
}

// Get returns the current build metadata.
func Get() Info { return current }

// Enrich fills the commit and builder from runtime/debug.ReadBuildInfo when
// the linker left them at their placeholder values.
func Enrich() {
	if current.Commit != "none" && current.BuiltBy != "unknown" {
		return
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if current.Commit == "none" {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				current.Commit = setting.Value
			}
		}
	}
	if current.BuiltBy == "unknown" {
		current.BuiltBy = info.GoVersion
	}
}

// String renders the multi-line block printed by --version.
func (i Info) String() string {
	return fmt.Sprintf("lazymd version %s\ncommit: %s\nbuilt at: %s\nbuilt by: %s", i.Version, i.Commit, i.Date, i.BuiltBy)
}
