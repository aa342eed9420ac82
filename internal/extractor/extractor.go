// Package extractor unpacks downloaded release assets.
package extractor

import (
	"strings"

	"github.com/coolclis/coolclis/internal/domain"
)

var tarExts = []string{
	".tar.gz", ".tar.zst", ".tar.xz", ".tar.bz2",
	".tgz", ".txz", ".tzst", ".tbz2", ".tar",
}

type Extractor struct {
	tar *TARExtractor
	zip *ZIPExtractor
}

func New() *Extractor {
	return &Extractor{
		tar: NewTAR(),
		zip: NewZIP(),
	}
}

// Detect picks the archive kind from the asset filename. Anything that is
// not a zip or tar archive is treated as the binary itself.
func Detect(assetName string) domain.ArchiveKind {
	lower := strings.ToLower(assetName)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		return domain.KindZip
	case isTarArchive(lower):
		return domain.KindTar
	default:
		return domain.KindRaw
	}
}

// Extract unpacks src into dst according to kind. KindRaw is a no-op:
// the downloaded file already is the binary.
func (e *Extractor) Extract(kind domain.ArchiveKind, src, dst string) error {
	switch kind {
	case domain.KindZip:
		return e.zip.Extract(src, dst)
	case domain.KindTar:
		return e.tar.Extract(src, dst)
	default:
		return nil
	}
}

func isTarArchive(name string) bool {
	for _, ext := range tarExts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
