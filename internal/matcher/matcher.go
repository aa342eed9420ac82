// Package matcher selects the release asset that fits the host platform.
//
// Asset names are produced by unrelated third-party release pipelines, so
// selection is a scoring pass over the platform alias vocabulary instead of
// per-project naming patterns.
package matcher

import (
	"fmt"
	"path"
	"strings"

	"github.com/coolclis/coolclis/internal/domain"
	"github.com/coolclis/coolclis/internal/platform"
)

// Tokens that mark an asset as a checksum, signature, source archive or
// debug artifact. Such assets are never selected regardless of score.
var disqualified = []string{
	"sha256", "sha512", "md5", "checksum",
	".sig", ".asc", ".pem", ".sbom",
	"src", "source", "debug",
}

var archiveExts = []string{
	".tar.gz", ".tgz", ".tar.xz", ".txz", ".tar.bz2", ".tbz2",
	".tar.zst", ".tzst", ".tar", ".zip",
}

// Select returns the single asset that best matches the platform. Only
// assets whose name carries both an OS and an arch alias token are
// eligible; ties are broken by recognized extension, then shortest name.
// Zero eligible assets yield ErrNoMatch, an unresolved tie yields
// ErrAmbiguousMatch. Selection is deterministic for identical inputs.
func Select(assets []domain.ReleaseAsset, p domain.Platform) (domain.ReleaseAsset, error) {
	var candidates, osOnly []domain.ReleaseAsset

	for _, asset := range assets {
		name := strings.ToLower(asset.Name)
		if isDisqualified(name) {
			continue
		}
		os := matchesOS(name, p.OS)
		arch := matchesAny(name, platform.ArchAliases(p.Arch))
		switch {
		case os && arch:
			candidates = append(candidates, asset)
		case os:
			osOnly = append(osOnly, asset)
		}
	}

	// Many Windows-only releases omit the architecture from the filename.
	// Tolerate that on the default x86_64 when the OS match is unique and
	// the name truly carries no arch token. A name that spells out a
	// different architecture is a mismatch, not an omission.
	if len(candidates) == 0 && p.OS == domain.OSWindows && p.Arch == domain.ArchAMD64 &&
		len(osOnly) == 1 && !carriesArchToken(strings.ToLower(osOnly[0].Name)) {
		return osOnly[0], nil
	}

	switch len(candidates) {
	case 0:
		return domain.ReleaseAsset{}, fmt.Errorf("%w (%s)", domain.ErrNoMatch, p)
	case 1:
		return candidates[0], nil
	}

	pool := withRecognizedExtension(candidates)
	if len(pool) == 0 {
		pool = candidates
	}

	// Shortest name is least likely to carry an extra suffix that is
	// actually a different variant.
	shortest := []domain.ReleaseAsset{pool[0]}
	for _, asset := range pool[1:] {
		switch {
		case len(asset.Name) < len(shortest[0].Name):
			shortest = []domain.ReleaseAsset{asset}
		case len(asset.Name) == len(shortest[0].Name):
			shortest = append(shortest, asset)
		}
	}
	if len(shortest) == 1 {
		return shortest[0], nil
	}

	names := make([]string, len(shortest))
	for i, asset := range shortest {
		names[i] = asset.Name
	}
	return domain.ReleaseAsset{}, fmt.Errorf("%w (%s): %s; specify the asset manually",
		domain.ErrAmbiguousMatch, p, strings.Join(names, ", "))
}

func isDisqualified(name string) bool {
	for _, token := range disqualified {
		if strings.Contains(name, token) {
			return true
		}
	}
	return false
}

func matchesOS(name string, os domain.OS) bool {
	if os == domain.OSWindows && strings.Contains(name, "darwin") {
		// "win" is a substring of "darwin".
		return strings.Contains(name, "windows")
	}
	return matchesAny(name, platform.OSAliases(os))
}

func carriesArchToken(name string) bool {
	for _, arch := range []domain.Arch{domain.ArchAMD64, domain.ArchARM64} {
		if matchesAny(name, platform.ArchAliases(arch)) {
			return true
		}
	}
	return false
}

func matchesAny(name string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(name, token) {
			return true
		}
	}
	return false
}

func withRecognizedExtension(assets []domain.ReleaseAsset) []domain.ReleaseAsset {
	var out []domain.ReleaseAsset
	for _, asset := range assets {
		if recognizedExtension(asset.Name) {
			out = append(out, asset)
		}
	}
	return out
}

// recognizedExtension reports whether the name ends in a known archive
// extension or looks like a raw executable. Trailing version components
// such as "tool-1.2" make path.Ext useless on bare binaries, so anything
// whose apparent extension is numeric or contains separators counts as
// extensionless.
func recognizedExtension(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range archiveExts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	if strings.HasSuffix(lower, ".exe") || strings.HasSuffix(lower, ".appimage") {
		return true
	}
	ext := path.Ext(lower)
	if ext == "" {
		return true
	}
	trimmed := strings.TrimPrefix(ext, ".")
	if strings.ContainsAny(trimmed, "-_") || strings.Trim(trimmed, "0123456789") == "" {
		return true
	}
	return false
}
