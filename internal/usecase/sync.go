package usecase

import (
	"archive/zip"
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

// FreshnessWindow is the default window within which a cached snapshot is
// considered fresh enough to reuse without refetching.
const FreshnessWindow = 12 * time.Hour

// SnapshotRetain is the number of newest snapshots kept after each
// successful extraction; older ones are pruned.
const SnapshotRetain = 5

const fetchedAtMarker = ".fetched_at"
const revisionHeaderName = "X-Source-Revision"

// AcquireSnapshot implements the upstream sync contract: reuse a fresh prior
// snapshot, otherwise fetch, extract, and prune. On fetch failure it falls
// back to a usable prior snapshot (emitting an OfflineWarning) or fails with
// ErrStartup if none exists. prior is the only earlier snapshot considered:
// snapshots already extracted under the cache root are not looked up.
func AcquireSnapshot(ctx context.Context, fs FileSystemPort, upstream UpstreamPort, paths Paths, repoSlug string, freshness time.Duration, retain int, force bool, prior *Snapshot, now time.Time) (Snapshot, []error, error) {
	if prior != nil && !force && prior.Fresh(now, freshness) {
		return *prior, nil, nil
	}

	fetch, err := upstream.FetchArchive(ctx, repoSlug)
	if err != nil {
		if prior != nil {
			return *prior, []error{OfflineWarning{Cause: err}}, nil
		}
		return Snapshot{}, nil, fmt.Errorf("fetch %s: %w: %w", repoSlug, ErrStartup, err)
	}

	archiveHash := sha256.Sum256(fetch.Data)
	commitID, topLevel, err := resolveCommitID(fetch, archiveHash)
	if err != nil {
		if prior != nil {
			return *prior, []error{OfflineWarning{Cause: err}}, nil
		}
		return Snapshot{}, nil, fmt.Errorf("resolve commit id: %w: %w", ErrStartup, err)
	}

	rootDir := fs.Join(paths.CacheRoot, commitID)
	if err := extractArchive(ctx, fs, fetch.Data, topLevel, rootDir); err != nil {
		if prior != nil {
			return *prior, []error{OfflineWarning{Cause: err}}, nil
		}
		return Snapshot{}, nil, fmt.Errorf("extract archive: %w: %w", ErrStartup, err)
	}

	snap := Snapshot{CommitID: commitID, RootDir: rootDir, FetchedAt: now, ArchiveSHA256: archiveHash}
	if err := writeFetchedAtMarker(ctx, fs, rootDir, now); err != nil {
		if prior != nil {
			return *prior, []error{OfflineWarning{Cause: err}}, nil
		}
		return Snapshot{}, nil, fmt.Errorf("write snapshot marker: %w: %w", ErrStartup, err)
	}

	var warnings []error
	if err := pruneSnapshots(ctx, fs, paths.CacheRoot, commitID, retain); err != nil {
		warnings = append(warnings, PruneWarning{Dir: paths.CacheRoot, Cause: err})
	}

	return snap, warnings, nil
}

// resolveCommitID picks the commit id in priority order: response header,
// then the zip's shared top-level directory suffix, then a stable hash of
// the archive bytes. It also returns the shared top-level prefix (possibly
// empty) so extraction can strip it.
func resolveCommitID(fetch *ArchiveFetch, archiveHash [32]byte) (commitID string, topLevel string, err error) {
	topLevel, tlErr := zipTopLevelDir(fetch.Data)

	if rev := strings.TrimSpace(fetch.RevisionHeader); rev != "" {
		return rev, topLevel, nil
	}
	if tlErr == nil && topLevel != "" {
		if idx := strings.LastIndexByte(topLevel, '-'); idx >= 0 && idx < len(topLevel)-1 {
			return topLevel[idx+1:], topLevel, nil
		}
		return topLevel, topLevel, nil
	}
	return fmt.Sprintf("%x", archiveHash[:8]), topLevel, nil
}

func zipTopLevelDir(data []byte) (string, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var top string
	for _, f := range r.File {
		parts := strings.SplitN(f.Name, "/", 2)
		if len(parts) < 2 || parts[0] == "" {
			continue
		}
		if top == "" {
			top = parts[0]
			continue
		}
		if top != parts[0] {
			return "", fmt.Errorf("archive has no common top-level directory")
		}
	}
	if top == "" {
		return "", fmt.Errorf("archive has no top-level directory")
	}
	return top, nil
}

func extractArchive(ctx context.Context, fs FileSystemPort, data []byte, topLevel, destDir string) error {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return err
	}
	prefix := topLevel + "/"
	for _, f := range r.File {
		name := f.Name
		if prefix != "/" {
			if !strings.HasPrefix(name, prefix) {
				continue
			}
			name = strings.TrimPrefix(name, prefix)
		}
		if name == "" || f.FileInfo().IsDir() {
			continue
		}
		destPath := fs.Join(destDir, filepathFromSlash(name))
		if err := fs.CreateDir(ctx, fs.Dir(destPath), 0o755); err != nil {
			return err
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		content, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return err
		}
		if err := fs.WriteFile(ctx, destPath, content, 0o644); err != nil {
			return err
		}
	}
	return nil
}

func filepathFromSlash(p string) string { return p }

func writeFetchedAtMarker(ctx context.Context, fs FileSystemPort, rootDir string, at time.Time) error {
	markerPath := rootDir + fetchedAtMarker
	return fs.WriteFile(ctx, markerPath, []byte(at.UTC().Format(time.RFC3339)), 0o644)
}

// pruneSnapshots deletes every cache subdirectory except current and the
// retain-1 most-recently-fetched others, based on the fetch timestamp written
// inside each snapshot's marker file.
func pruneSnapshots(ctx context.Context, fs FileSystemPort, cacheRoot, currentCommitID string, retain int) error {
	entries, err := fs.ReadDir(ctx, cacheRoot)
	if err != nil {
		if fs.IsNotExist(err) {
			return nil
		}
		return err
	}

	type candidate struct {
		name      string
		fetchedAt time.Time
	}
	var all []candidate
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		markerPath := fs.Join(cacheRoot, e.Name()) + fetchedAtMarker
		data, err := fs.ReadFile(ctx, markerPath)
		var fetchedAt time.Time
		if err == nil {
			fetchedAt, _ = time.Parse(time.RFC3339, strings.TrimSpace(string(data)))
		}
		all = append(all, candidate{name: e.Name(), fetchedAt: fetchedAt})
	}

	sort.Slice(all, func(i, j int) bool { return all[i].fetchedAt.After(all[j].fetchedAt) })

	keep := make(map[string]bool, retain+1)
	keep[currentCommitID] = true
	for _, c := range all {
		if len(keep) >= retain {
			break
		}
		keep[c.name] = true
	}

	var firstErr error
	for _, c := range all {
		if keep[c.name] {
			continue
		}
		dir := fs.Join(cacheRoot, c.name)
		if err := fs.RemoveAll(ctx, dir); err != nil && firstErr == nil {
			firstErr = err
		}
		_ = fs.RemoveAll(ctx, dir+fetchedAtMarker)
	}
	return firstErr
}
