package installer

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/coolclis/coolclis/internal/domain"
)

// Archive internal layout is unconstrained by convention, so the binary
// is searched for recursively. The depth bound guards against
// pathological archives.
const maxLocateDepth = 8

// locate finds the requested binary inside an unpacked tree. An exact
// name match wins over a case-insensitive one; on Windows both are also
// tried with .exe appended.
func locate(root, binary string, os domain.OS) (string, error) {
	names := []string{binary}
	if os == domain.OSWindows && !strings.HasSuffix(strings.ToLower(binary), ".exe") {
		names = append(names, binary+".exe")
	}

	best := ""
	bestRank := len(names) * 2 // lower is better

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if depth(root, path) >= maxLocateDepth {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		for i, want := range names {
			rank := -1
			switch {
			case d.Name() == want:
				rank = i * 2
			case strings.EqualFold(d.Name(), want):
				rank = i*2 + 1
			}
			if rank >= 0 && rank < bestRank {
				best, bestRank = path, rank
			}
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExtraction, err)
	}
	if best == "" {
		return "", fmt.Errorf("%w: no file named %q", domain.ErrBinaryNotFound, binary)
	}
	return best, nil
}

func depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
