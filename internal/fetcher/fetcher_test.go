package fetcher_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/coolclis/coolclis/internal/domain"
	"github.com/coolclis/coolclis/internal/fetcher"
)

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names
}

func TestFetchStreamsToTempFile(t *testing.T) {
	t.Parallel()
	body := []byte("pretend this is a binary")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer srv.Close()

	dir := t.TempDir()
	var updates []int64
	var lastTotal int64
	progress := func(received, total int64) {
		updates = append(updates, received)
		lastTotal = total
	}

	path, err := fetcher.New(time.Minute).Fetch(context.Background(), srv.URL, int64(len(body)), dir, progress)
	if err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(body) {
		t.Fatalf("downloaded content mismatch: %q", got)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("temp file %s not in destination directory %s", path, dir)
	}

	if len(updates) == 0 {
		t.Fatal("no progress updates delivered")
	}
	for i := 1; i < len(updates); i++ {
		if updates[i] < updates[i-1] {
			t.Fatalf("progress went backwards: %v", updates)
		}
	}
	if updates[len(updates)-1] != int64(len(body)) {
		t.Fatalf("final progress %d, want %d", updates[len(updates)-1], len(body))
	}
	if lastTotal != int64(len(body)) {
		t.Fatalf("total %d, want %d", lastTotal, len(body))
	}
}

func TestFetchSizeMismatch(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("short"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	_, err := fetcher.New(time.Minute).Fetch(context.Background(), srv.URL, 9999, dir, nil)
	if !errors.Is(err, domain.ErrSizeMismatch) {
		t.Fatalf("want ErrSizeMismatch, got %v", err)
	}
	if names := listDir(t, dir); len(names) != 0 {
		t.Fatalf("temp file left behind: %v", names)
	}
}

func TestFetchInterruptedMidStream(t *testing.T) {
	t.Parallel()
	full := 1000
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", strconv.Itoa(full))
		w.WriteHeader(http.StatusOK)
		w.Write(make([]byte, full*40/100))
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		panic(http.ErrAbortHandler)
	}))
	defer srv.Close()

	dir := t.TempDir()
	_, err := fetcher.New(time.Minute).Fetch(context.Background(), srv.URL, int64(full), dir, nil)
	if !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("want ErrNetwork, got %v", err)
	}
	if names := listDir(t, dir); len(names) != 0 {
		t.Fatalf("partial download left behind: %v", names)
	}
}

func TestFetchNon200(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dir := t.TempDir()
	_, err := fetcher.New(time.Minute).Fetch(context.Background(), srv.URL, 0, dir, nil)
	if !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("want ErrNetwork, got %v", err)
	}
	if names := listDir(t, dir); len(names) != 0 {
		t.Fatalf("file left behind on HTTP error: %v", names)
	}
}

func TestFetchCancelled(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "100")
		w.WriteHeader(http.StatusOK)
		w.Write(make([]byte, 10))
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	dir := t.TempDir()

	done := make(chan error, 1)
	go func() {
		_, err := fetcher.New(time.Minute).Fetch(ctx, srv.URL, 100, dir, func(received, total int64) {
			if received >= 10 {
				cancel()
			}
		})
		done <- err
	}()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("want error after cancellation")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("fetch did not return after cancellation")
	}
	if names := listDir(t, dir); len(names) != 0 {
		t.Fatalf("partial download left behind: %v", names)
	}
}
