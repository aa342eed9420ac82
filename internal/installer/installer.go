// Package installer drives one install request through resolve, match,
// download, extract and placement.
package installer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/coolclis/coolclis/internal/domain"
	"github.com/coolclis/coolclis/internal/extractor"
	"github.com/coolclis/coolclis/internal/matcher"
)

type Installer struct {
	source     domain.ReleaseSource
	downloader domain.Downloader
	extractor  domain.Extractor
	platform   domain.Platform
}

func New(source domain.ReleaseSource, downloader domain.Downloader, ex domain.Extractor, platform domain.Platform) *Installer {
	return &Installer{
		source:     source,
		downloader: downloader,
		extractor:  ex,
		platform:   platform,
	}
}

// Install runs the pipeline for a single request. Stages run in strict
// sequence and the first failing stage aborts the run; temporary files
// and the extraction scratch directory are removed on every exit path,
// so a failed or cancelled install never leaves a partial binary at the
// destination.
func (i *Installer) Install(ctx context.Context, req domain.InstallRequest, progress domain.ProgressFunc) (*domain.InstallResult, error) {
	version := req.Version
	if version == "" {
		version = "latest"
	}

	release, err := i.source.Resolve(ctx, req.Repo, req.Version)
	if err != nil {
		return nil, fmt.Errorf("resolving %s@%s: %w", req.Repo, version, err)
	}

	asset, err := matcher.Select(release.Assets, i.platform)
	if err != nil {
		return nil, fmt.Errorf("selecting asset for %s@%s: %w", req.Repo, release.TagName, err)
	}

	if err := os.MkdirAll(req.Dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating %s: %v", domain.ErrInstallIO, req.Dir, err)
	}

	// Download lands next to the final destination so the closing rename
	// stays on one volume.
	tmp, err := i.downloader.Fetch(ctx, asset.DownloadURL, asset.Size, req.Dir, progress)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", asset.Name, err)
	}
	defer os.Remove(tmp)

	dest := filepath.Join(req.Dir, destName(req.Binary, i.platform.OS))

	kind := extractor.Detect(asset.Name)
	if kind == domain.KindRaw {
		// The stream carries no permission bits.
		if err := os.Chmod(tmp, 0755); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInstallIO, err)
		}
		if err := os.Rename(tmp, dest); err != nil {
			return nil, fmt.Errorf("%w: placing %s: %v", domain.ErrInstallIO, dest, err)
		}
		return &domain.InstallResult{Repo: req.Repo, Tag: release.TagName, Asset: asset, Path: dest}, nil
	}

	scratch, err := os.MkdirTemp("", "coolclis-extract-")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtraction, err)
	}
	defer os.RemoveAll(scratch)

	if err := i.extractor.Extract(kind, tmp, scratch); err != nil {
		return nil, fmt.Errorf("extracting %s: %w", asset.Name, err)
	}

	located, err := locate(scratch, req.Binary, i.platform.OS)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", asset.Name, err)
	}

	if err := place(located, dest); err != nil {
		return nil, err
	}

	return &domain.InstallResult{Repo: req.Repo, Tag: release.TagName, Asset: asset, Path: dest}, nil
}

// destName appends .exe on Windows, where executability is derived from
// the extension.
func destName(binary string, os domain.OS) string {
	if os == domain.OSWindows && !strings.HasSuffix(strings.ToLower(binary), ".exe") {
		return binary + ".exe"
	}
	return binary
}

// place copies src over dest via a sibling temporary file and a rename,
// so a crash mid-install never leaves a half-written executable at the
// final path.
func place(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInstallIO, err)
	}
	defer in.Close()

	out, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+"-")
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInstallIO, err)
	}
	tmp := out.Name()

	_, err = io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmp, 0755)
	}
	if err == nil {
		err = os.Rename(tmp, dest)
	}
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: placing %s: %v", domain.ErrInstallIO, dest, err)
	}
	return nil
}
