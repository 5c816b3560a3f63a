package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// Version is the current version of the application.
	// It is intended to be set at build time using -ldflags.
	// Falls back to the module version embedded by go install.
	Version = "dev"

	// Commit is the VCS revision, set with -ldflags or read from build info.
	Commit = ""
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
	if Commit == "" {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				Commit = s.Value[:7]
			}
		}
	}
}

// String formats the version line printed by the CLI.
func String() string {
	s := fmt.Sprintf("passgauge %s %s/%s", Version, runtime.GOOS, runtime.GOARCH)
	if Commit != "" {
		s += " (" + Commit + ")"
	}
	return s
}
