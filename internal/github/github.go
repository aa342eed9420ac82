// Package github resolves release metadata through the GitHub REST API.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/coolclis/coolclis/internal/domain"
)

const (
	defaultAPIBase = "https://api.github.com"
	userAgent      = "coolclis"
)

type Client struct {
	apiBase string
	token   string
	client  *http.Client
}

type Option func(*Client)

// WithAPIBase points the client at a different API host, used by tests.
func WithAPIBase(base string) Option {
	return func(c *Client) { c.apiBase = strings.TrimRight(base, "/") }
}

// WithHTTPClient replaces the underlying net/http client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// NewClient returns a GitHub API client. A GITHUB_TOKEN environment
// variable is used for authentication when present, which raises the API
// rate limit.
func NewClient(opts ...Option) *Client {
	c := &Client{
		apiBase: defaultAPIBase,
		token:   os.Getenv("GITHUB_TOKEN"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve fetches the release for the given tag, or the canonical latest
// release when version is empty. The latest-release endpoint never
// returns pre-releases; a repository whose releases are all pre-releases
// resolves to ErrReleaseNotFound.
func (c *Client) Resolve(ctx context.Context, repo, version string) (*domain.Release, error) {
	uri := "/repos/" + repo + "/releases/latest"
	if version != "" {
		uri = "/repos/" + repo + "/releases/tags/" + version
	}

	resp, err := c.get(ctx, uri)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		if version != "" {
			// A missing tag answers in a single lookup; only the
			// latest path needs to distinguish a missing repository
			// from a repository without releases.
			return nil, fmt.Errorf("%w: %s has no release tagged %s", domain.ErrReleaseNotFound, repo, version)
		}
		exists, err := c.RepoExists(ctx, repo)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("%w: %s", domain.ErrRepoNotFound, repo)
		}
		return nil, fmt.Errorf("%w: %s has no published releases", domain.ErrReleaseNotFound, repo)
	default:
		return nil, statusError(resp.StatusCode, uri)
	}

	var release domain.Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("%w: decoding release metadata for %s: %v", domain.ErrNetwork, repo, err)
	}
	return &release, nil
}

// RepoExists reports whether the repository is reachable through the API.
func (c *Client) RepoExists(ctx context.Context, repo string) (bool, error) {
	resp, err := c.get(ctx, "/repos/"+repo)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, statusError(resp.StatusCode, "/repos/"+repo)
	}
}

func (c *Client) get(ctx context.Context, uri string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+uri, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	return resp, nil
}

func statusError(code int, uri string) error {
	switch code {
	case http.StatusForbidden, http.StatusTooManyRequests:
		return domain.ErrRateLimited
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: authentication failed (HTTP 401)", domain.ErrNetwork)
	default:
		return fmt.Errorf("%w: HTTP %d for %s", domain.ErrNetwork, code, uri)
	}
}
