package extractor_test

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/coolclis/coolclis/internal/domain"
	"github.com/coolclis/coolclis/internal/extractor"
)

func TestDetect(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name string
		want domain.ArchiveKind
	}{
		{name: "tool-linux-amd64.tar.gz", want: domain.KindTar},
		{name: "tool-linux-amd64.tgz", want: domain.KindTar},
		{name: "tool-linux-amd64.tar.xz", want: domain.KindTar},
		{name: "tool-linux-amd64.tar.zst", want: domain.KindTar},
		{name: "TOOL-WINDOWS.ZIP", want: domain.KindZip},
		{name: "tool-linux-amd64", want: domain.KindRaw},
		{name: "tool.exe", want: domain.KindRaw},
		{name: "tool-1.2.3-linux-amd64", want: domain.KindRaw},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractor.Detect(tc.name); got != tc.want {
				t.Fatalf("Detect(%q) = %v, want %v", tc.name, got, tc.want)
			}
		})
	}
}

type archiveFile struct {
	name    string
	content string
	mode    os.FileMode
}

func writeTarGz(t *testing.T, path string, files []archiveFile) {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for _, f := range files {
		header := &tar.Header{
			Name: f.name,
			Mode: int64(f.mode),
			Size: int64(len(f.content)),
		}
		if err := tw.WriteHeader(header); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write([]byte(f.content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

func writeZip(t *testing.T, path string, files []archiveFile) {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		header := &zip.FileHeader{Name: f.name, Method: zip.Deflate}
		header.SetMode(f.mode)
		w, err := zw.CreateHeader(header)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(f.content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestExtractTarGzPreservesExecutableBit(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	src := filepath.Join(tmp, "tool.tar.gz")
	writeTarGz(t, src, []archiveFile{
		{name: "tool-1.0/tool", content: "#!/bin/sh\necho hi\n", mode: 0755},
		{name: "tool-1.0/README", content: "docs", mode: 0644},
	})

	dst := filepath.Join(tmp, "out")
	if err := extractor.New().Extract(domain.KindTar, src, dst); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(filepath.Join(dst, "tool-1.0", "tool"))
	if err != nil {
		t.Fatal(err)
	}
	if runtime.GOOS != "windows" && info.Mode()&0111 == 0 {
		t.Fatalf("executable bit lost, mode %v", info.Mode())
	}
}

func TestExtractZipPreservesExecutableBit(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	src := filepath.Join(tmp, "tool.zip")
	writeZip(t, src, []archiveFile{
		{name: "bin/tool", content: "binary bytes", mode: 0755},
	})

	dst := filepath.Join(tmp, "out")
	if err := extractor.New().Extract(domain.KindZip, src, dst); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(filepath.Join(dst, "bin", "tool"))
	if err != nil {
		t.Fatal(err)
	}
	if runtime.GOOS != "windows" && info.Mode()&0111 == 0 {
		t.Fatalf("executable bit lost, mode %v", info.Mode())
	}
}

func TestExtractCorruptArchives(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()

	// gzip magic followed by garbage
	badTar := filepath.Join(tmp, "bad.tar.gz")
	if err := os.WriteFile(badTar, []byte{0x1f, 0x8b, 0xff, 0xfe, 0xfd, 0xfc}, 0644); err != nil {
		t.Fatal(err)
	}
	if err := extractor.New().Extract(domain.KindTar, badTar, filepath.Join(tmp, "out1")); !errors.Is(err, domain.ErrCorruptArchive) {
		t.Fatalf("want ErrCorruptArchive, got %v", err)
	}

	badZip := filepath.Join(tmp, "bad.zip")
	if err := os.WriteFile(badZip, []byte("this is not a zip"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := extractor.New().Extract(domain.KindZip, badZip, filepath.Join(tmp, "out2")); !errors.Is(err, domain.ErrCorruptArchive) {
		t.Fatalf("want ErrCorruptArchive, got %v", err)
	}
}

func TestExtractRejectsPathTraversal(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	src := filepath.Join(tmp, "evil.tar.gz")
	writeTarGz(t, src, []archiveFile{
		{name: "../evil", content: "nope", mode: 0644},
	})

	err := extractor.New().Extract(domain.KindTar, src, filepath.Join(tmp, "out"))
	if !errors.Is(err, domain.ErrCorruptArchive) {
		t.Fatalf("want ErrCorruptArchive, got %v", err)
	}
}

func TestExtractRejectsEscapingSymlink(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	if err := tw.WriteHeader(&tar.Header{
		Name:     "tool-1.0/tool",
		Linkname: "../../outside",
		Typeflag: tar.TypeSymlink,
		Mode:     0777,
	}); err != nil {
		t.Fatal(err)
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	src := filepath.Join(tmp, "evil-link.tar.gz")
	if err := os.WriteFile(src, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	err := extractor.New().Extract(domain.KindTar, src, filepath.Join(tmp, "out"))
	if !errors.Is(err, domain.ErrCorruptArchive) {
		t.Fatalf("want ErrCorruptArchive, got %v", err)
	}
}

func TestExtractRawIsNoOp(t *testing.T) {
	t.Parallel()
	if err := extractor.New().Extract(domain.KindRaw, "does-not-exist", "nowhere"); err != nil {
		t.Fatal(err)
	}
}
