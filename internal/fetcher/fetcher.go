// Package fetcher streams release assets to disk.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/coolclis/coolclis/internal/domain"
)

const userAgent = "coolclis"

type HTTPDownloader struct {
	client *http.Client
}

func New(timeout time.Duration) *HTTPDownloader {
	return &HTTPDownloader{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch streams url into a temporary file under dir and returns its path.
// dir should sit on the same volume as the final destination so the later
// rename is atomic. The temporary file is removed on every failure path;
// no retries are attempted.
func (d *HTTPDownloader) Fetch(ctx context.Context, url string, expectedSize int64, dir string, progress domain.ProgressFunc) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/octet-stream")

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: HTTP %d for %s", domain.ErrNetwork, resp.StatusCode, url)
	}

	total := resp.ContentLength
	if total < 0 && expectedSize > 0 {
		total = expectedSize
	}

	file, err := os.CreateTemp(dir, ".coolclis-download-*")
	if err != nil {
		return "", fmt.Errorf("%w: creating download file: %v", domain.ErrInstallIO, err)
	}
	tmp := file.Name()

	counter := &countingWriter{file: file, total: total, progress: progress}
	_, err = io.Copy(counter, resp.Body)
	if cerr := file.Close(); err == nil && cerr != nil {
		err = &writeError{cerr}
	}
	if err != nil {
		os.Remove(tmp)
		var we *writeError
		if errors.As(err, &we) {
			return "", fmt.Errorf("%w: writing download: %v", domain.ErrInstallIO, we.err)
		}
		return "", fmt.Errorf("%w: transfer interrupted: %v", domain.ErrNetwork, err)
	}

	if declared := resp.ContentLength; declared >= 0 && counter.written != declared {
		os.Remove(tmp)
		return "", fmt.Errorf("%w: got %d bytes, server declared %d", domain.ErrSizeMismatch, counter.written, declared)
	}
	if expectedSize > 0 && counter.written != expectedSize {
		os.Remove(tmp)
		return "", fmt.Errorf("%w: got %d bytes, release metadata declared %d", domain.ErrSizeMismatch, counter.written, expectedSize)
	}

	return tmp, nil
}

// countingWriter forwards bytes to the file and reports the running total.
// Write failures are wrapped so the caller can tell disk errors from a
// dropped connection.
type countingWriter struct {
	file     *os.File
	written  int64
	total    int64
	progress domain.ProgressFunc
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.file.Write(p)
	c.written += int64(n)
	if c.progress != nil {
		c.progress(c.written, c.total)
	}
	if err != nil {
		return n, &writeError{err}
	}
	return n, nil
}

type writeError struct {
	err error
}

func (w *writeError) Error() string { return w.err.Error() }
