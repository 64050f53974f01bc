package usecase

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func buildZip(t *testing.T, topLevel string, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		full := name
		if topLevel != "" {
			full = topLevel + "/" + name
		}
		f, err := w.Create(full)
		if err != nil {
			t.Fatalf("zip create %s: %v", full, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("zip write %s: %v", full, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func TestAcquireSnapshot_ReusesFreshPrior(t *testing.T) {
	root := t.TempDir()
	paths := testPaths(root)
	now := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	prior := &Snapshot{CommitID: "abc123", RootDir: filepath.Join(paths.CacheRoot, "abc123"), FetchedAt: now.Add(-time.Hour)}
	up := &testUpstream{}

	snap, warnings, err := AcquireSnapshot(context.Background(), newTestFileSystem(), up, paths, "owner/repo", FreshnessWindow, SnapshotRetain, false, prior, now)
	if err != nil {
		t.Fatalf("AcquireSnapshot: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if snap.CommitID != prior.CommitID {
		t.Errorf("expected prior snapshot reused, got %+v", snap)
	}
	if up.calls != 0 {
		t.Errorf("expected no fetch for a fresh snapshot, got %d calls", up.calls)
	}
}

func TestAcquireSnapshot_ForceRefetchesEvenIfFresh(t *testing.T) {
	root := t.TempDir()
	paths := testPaths(root)
	now := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	prior := &Snapshot{CommitID: "abc123", RootDir: filepath.Join(paths.CacheRoot, "abc123"), FetchedAt: now.Add(-time.Minute)}
	archive := buildZip(t, "repo-deadbeef", map[string]string{"instructions/a.instructions.md": "body\n"})
	up := &testUpstream{archive: &ArchiveFetch{Data: archive}}

	snap, _, err := AcquireSnapshot(context.Background(), newTestFileSystem(), up, paths, "owner/repo", FreshnessWindow, SnapshotRetain, true, prior, now)
	if err != nil {
		t.Fatalf("AcquireSnapshot: %v", err)
	}
	if up.calls != 1 {
		t.Errorf("expected 1 fetch with force=true, got %d", up.calls)
	}
	if snap.CommitID != "deadbeef" {
		t.Errorf("expected commit id from top-level suffix, got %q", snap.CommitID)
	}
}

func TestAcquireSnapshot_FetchFailureFallsBackToPriorWithOfflineWarning(t *testing.T) {
	root := t.TempDir()
	paths := testPaths(root)
	now := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	prior := &Snapshot{CommitID: "abc123", RootDir: filepath.Join(paths.CacheRoot, "abc123"), FetchedAt: now.Add(-48 * time.Hour)}
	up := &testUpstream{err: context.DeadlineExceeded}

	snap, warnings, err := AcquireSnapshot(context.Background(), newTestFileSystem(), up, paths, "owner/repo", FreshnessWindow, SnapshotRetain, false, prior, now)
	if err != nil {
		t.Fatalf("expected fallback, got error: %v", err)
	}
	if snap.CommitID != prior.CommitID {
		t.Errorf("expected prior snapshot returned, got %+v", snap)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(warnings))
	}
	if _, ok := warnings[0].(OfflineWarning); !ok {
		t.Errorf("expected OfflineWarning, got %T", warnings[0])
	}
}

func TestAcquireSnapshot_FetchFailureWithNoPriorFailsWithErrStartup(t *testing.T) {
	root := t.TempDir()
	paths := testPaths(root)
	up := &testUpstream{err: context.DeadlineExceeded}

	_, _, err := AcquireSnapshot(context.Background(), newTestFileSystem(), up, paths, "owner/repo", FreshnessWindow, SnapshotRetain, false, nil, time.Now())
	if !errors.Is(err, ErrStartup) {
		t.Fatalf("expected ErrStartup, got %v", err)
	}
}

func TestAcquireSnapshot_UsesRevisionHeaderOverTopLevelSuffix(t *testing.T) {
	root := t.TempDir()
	paths := testPaths(root)
	archive := buildZip(t, "repo-deadbeef", map[string]string{"prompts/p.prompt.md": "x\n"})
	up := &testUpstream{archive: &ArchiveFetch{Data: archive, RevisionHeader: "v1.2.3"}}

	snap, _, err := AcquireSnapshot(context.Background(), newTestFileSystem(), up, paths, "owner/repo", FreshnessWindow, SnapshotRetain, false, nil, time.Now())
	if err != nil {
		t.Fatalf("AcquireSnapshot: %v", err)
	}
	if snap.CommitID != "v1.2.3" {
		t.Errorf("expected header revision to win, got %q", snap.CommitID)
	}
}

func TestAcquireSnapshot_ExtractsStrippingTopLevelDirectory(t *testing.T) {
	root := t.TempDir()
	paths := testPaths(root)
	archive := buildZip(t, "repo-cafef00d", map[string]string{
		"instructions/security.instructions.md": "secure\n",
	})
	up := &testUpstream{archive: &ArchiveFetch{Data: archive}}

	snap, _, err := AcquireSnapshot(context.Background(), newTestFileSystem(), up, paths, "owner/repo", FreshnessWindow, SnapshotRetain, false, nil, time.Now())
	if err != nil {
		t.Fatalf("AcquireSnapshot: %v", err)
	}
	extracted := filepath.Join(snap.RootDir, "instructions", "security.instructions.md")
	data, err := os.ReadFile(extracted) // #nosec G304 -- test path under t.TempDir().
	if err != nil {
		t.Fatalf("expected extracted file at %s: %v", extracted, err)
	}
	if string(data) != "secure\n" {
		t.Errorf("content = %q", data)
	}
}

func TestAcquireSnapshot_PrunesOlderSnapshotsBeyondRetain(t *testing.T) {
	root := t.TempDir()
	paths := testPaths(root)
	fs := newTestFileSystem()
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		commit := string(rune('a' + i))
		dir := filepath.Join(paths.CacheRoot, commit)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		marker := dir + ".fetched_at"
		at := base.Add(time.Duration(i) * time.Hour).UTC().Format(time.RFC3339)
		if err := os.WriteFile(marker, []byte(at), 0o644); err != nil {
			t.Fatalf("write marker: %v", err)
		}
	}

	archive := buildZip(t, "repo-newest1", map[string]string{"prompts/p.prompt.md": "x\n"})
	up := &testUpstream{archive: &ArchiveFetch{Data: archive}}
	now := base.Add(10 * time.Hour)

	snap, warnings, err := AcquireSnapshot(ctx, fs, up, paths, "owner/repo", FreshnessWindow, SnapshotRetain, false, nil, now)
	if err != nil {
		t.Fatalf("AcquireSnapshot: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	entries, err := os.ReadDir(paths.CacheRoot)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	var dirCount int
	for _, e := range entries {
		if e.IsDir() {
			dirCount++
		}
	}
	// 5 retained (newest 4 of the original 6 plus the new snapshot).
	if dirCount != SnapshotRetain {
		t.Errorf("expected %d retained snapshot dirs, got %d (%v)", SnapshotRetain, dirCount, entries)
	}
	if _, err := os.Stat(filepath.Join(paths.CacheRoot, "a")); !os.IsNotExist(err) {
		t.Error("expected oldest snapshot 'a' pruned")
	}
	if snap.CommitID != "newest1" {
		t.Errorf("unexpected new commit id %q", snap.CommitID)
	}
}
