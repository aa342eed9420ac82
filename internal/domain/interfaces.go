package domain

import (
	"context"
)

// ProgressFunc observes a download in flight. received is monotonically
// non-decreasing; total is -1 when the server does not declare a length.
type ProgressFunc func(received, total int64)

// ReleaseSource resolves a repository plus optional tag to a concrete
// release. version == "" means the canonical latest release.
type ReleaseSource interface {
	Resolve(ctx context.Context, repo, version string) (*Release, error)
	RepoExists(ctx context.Context, repo string) (bool, error)
}

// Downloader streams an asset to a temporary file under dir and returns
// the temporary path. The caller owns the file from then on.
type Downloader interface {
	Fetch(ctx context.Context, url string, expectedSize int64, dir string, progress ProgressFunc) (string, error)
}

// Extractor unpacks an archive into dst, preserving file modes. The kind
// comes from the asset name, not the on-disk path, because downloads land
// in randomly named temporary files.
type Extractor interface {
	Extract(kind ArchiveKind, src, dst string) error
}

// Registry is the durable name -> repository mapping for predefined tools.
type Registry interface {
	Add(tool Tool) error
	Lookup(name string) (*Tool, bool, error)
	List() ([]Tool, error)
	Remove(name string) error
}
