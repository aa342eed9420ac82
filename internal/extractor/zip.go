package extractor

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/coolclis/coolclis/internal/domain"
)

type ZIPExtractor struct{}

func NewZIP() *ZIPExtractor {
	return &ZIPExtractor{}
}

func (ze *ZIPExtractor) Extract(src, dst string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("%w: zip: %v", domain.ErrCorruptArchive, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if strings.Contains(f.Name, "..") {
			return fmt.Errorf("%w: invalid path in archive: %s", domain.ErrCorruptArchive, f.Name)
		}

		target := filepath.Join(dst, f.Name)

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("%w: %v", domain.ErrExtraction, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrExtraction, err)
		}

		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrCorruptArchive, err)
		}

		// f.Mode carries the Unix permission bits when the zip was
		// produced on a Unix system.
		outFile, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, f.Mode())
		if err != nil {
			rc.Close()
			return fmt.Errorf("%w: %v", domain.ErrExtraction, err)
		}

		if _, err := io.Copy(outFile, rc); err != nil {
			rc.Close()
			outFile.Close()
			return fmt.Errorf("%w: %v", domain.ErrCorruptArchive, err)
		}

		rc.Close()
		if err := outFile.Close(); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrExtraction, err)
		}
	}

	return nil
}
