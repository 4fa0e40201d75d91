// Package version reports the build of the running binary.
package version

import (
	"runtime/debug"
)

// Version is set at build time with
// -ldflags "-X github.com/clinicplace/console/internal/shared/version.Version=...".
var Version = "dev"

// String returns the version, falling back to the module version recorded
// by the Go toolchain for development builds.
func String() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}
