package platform

import (
	"fmt"
	"runtime"

	"github.com/coolclis/coolclis/internal/domain"
)

// Release pipelines have no shared naming standard, so each platform maps
// to the set of tokens seen in the wild rather than a single canonical
// string.
var osAliases = map[domain.OS][]string{
	domain.OSLinux:   {"linux"},
	domain.OSDarwin:  {"darwin", "macos", "osx", "mac"},
	domain.OSWindows: {"windows", "win"},
}

var archAliases = map[domain.Arch][]string{
	domain.ArchAMD64: {"x86_64", "amd64", "x64"},
	domain.ArchARM64: {"aarch64", "arm64"},
}

var supported = map[domain.Platform]bool{
	{OS: domain.OSLinux, Arch: domain.ArchAMD64}:   true,
	{OS: domain.OSLinux, Arch: domain.ArchARM64}:   true,
	{OS: domain.OSDarwin, Arch: domain.ArchAMD64}:  true,
	{OS: domain.OSDarwin, Arch: domain.ArchARM64}:  true,
	{OS: domain.OSWindows, Arch: domain.ArchAMD64}: true,
}

// Detect returns the host platform, or ErrUnsupportedPlatform when the
// host is not one of the five supported OS/arch combinations.
func Detect() (domain.Platform, error) {
	return From(runtime.GOOS, runtime.GOARCH)
}

// From maps Go runtime identifiers to a supported platform.
func From(goos, goarch string) (domain.Platform, error) {
	p := domain.Platform{OS: domain.OS(goos), Arch: domain.Arch(goarch)}
	if !supported[p] {
		return domain.Platform{}, fmt.Errorf("%w: %s/%s", domain.ErrUnsupportedPlatform, goos, goarch)
	}
	return p, nil
}

// OSAliases returns the filename tokens that denote the given OS.
func OSAliases(os domain.OS) []string {
	return osAliases[os]
}

// ArchAliases returns the filename tokens that denote the given
// architecture.
func ArchAliases(arch domain.Arch) []string {
	return archAliases[arch]
}
