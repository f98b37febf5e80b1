// Package version exposes the build version of the cot binary.
package version

import "runtime/debug"

// Version is the release version, overridden at build time via
// -ldflags "-X github.com/cotstudio/cot/pkg/version.Version=v1.4.0".
//
//nolint:gochecknoglobals // Set by the linker.
var Version = "dev"

// GetVersion returns the binary version. When no release version was linked
// in, it falls back to the module version recorded in build info.
func GetVersion() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}
