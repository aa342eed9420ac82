package domain

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the install pipeline. Layers wrap these with
// context but never collapse one kind into another.
var (
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrRepoNotFound        = errors.New("repository not found")
	ErrReleaseNotFound     = errors.New("release not found")
	ErrNoMatch             = errors.New("no asset matches this platform")
	ErrAmbiguousMatch      = errors.New("multiple assets match this platform")
	ErrNetwork             = errors.New("network error")
	ErrSizeMismatch        = errors.New("downloaded size does not match declared size")
	ErrCorruptArchive      = errors.New("corrupt archive")
	ErrExtraction          = errors.New("extraction failed")
	ErrBinaryNotFound      = errors.New("binary not found in archive")
	ErrInstallIO           = errors.New("install failed")
)

// ErrRateLimited satisfies errors.Is(err, ErrNetwork) so callers that only
// care about the broad kind keep working, while the CLI can render the
// rate-limit hint specially.
var ErrRateLimited = fmt.Errorf("%w: GitHub API rate limit exceeded (set GITHUB_TOKEN for higher limits)", ErrNetwork)
