// Package httpfetch implements usecase.UpstreamPort over plain net/http,
// downloading a zip snapshot of a GitHub repository's default branch.
package httpfetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/astrosteveo/awesome-copilot-tui/internal/usecase"
)

const (
	revisionHeaderName = "X-Source-Revision"
	maxAttempts        = 3
	retryBaseDelay     = 500 * time.Millisecond
	maxArchiveBytes    = 256 << 20 // 256MiB, well above any realistic asset-repo archive
)

// Adapter implements usecase.UpstreamPort by downloading a codeload-style
// zip archive of a repository's default branch.
type Adapter struct {
	logger     *slog.Logger
	httpClient *http.Client
	baseURL    string // overridable in tests; defaults to codeload.github.com
}

// New creates a new HTTP upstream adapter.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		panic("httpfetch adapter requires logger")
	}
	return &Adapter{
		logger:     logger,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    "https://codeload.github.com",
	}
}

// FetchArchive downloads a zip archive of repoSlug's default branch (HEAD),
// retrying transient network and 5xx failures with a small bounded backoff.
func (a *Adapter) FetchArchive(ctx context.Context, repoSlug string) (*usecase.ArchiveFetch, error) {
	slug := strings.TrimSpace(repoSlug)
	if slug == "" {
		return nil, fmt.Errorf("upstream repo slug is empty")
	}

	url := fmt.Sprintf("%s/%s/zip/refs/heads/HEAD", a.baseURL, slug)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		fetch, err := a.attempt(ctx, url)
		if err == nil {
			return fetch, nil
		}
		lastErr = err
		a.logger.Debug("archive fetch attempt failed", "attempt", attempt, "error", err)
		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryBaseDelay * time.Duration(attempt)):
		}
	}
	return nil, fmt.Errorf("fetch archive for %s: %w", slug, lastErr)
}

func (a *Adapter) attempt(ctx context.Context, url string) (*usecase.ArchiveFetch, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxArchiveBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read archive body: %w", err)
	}
	if len(data) > maxArchiveBytes {
		return nil, fmt.Errorf("archive exceeds %d bytes", maxArchiveBytes)
	}

	return &usecase.ArchiveFetch{
		Data:           data,
		RevisionHeader: resp.Header.Get(revisionHeaderName),
	}, nil
}
