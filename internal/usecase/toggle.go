package usecase

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"
)

// ToggleExecutor performs enable/disable/reset against the filesystem,
// backing up overwritten-or-removed content before each destructive step and
// rolling back the in-memory enablement mutation if the filesystem step
// fails.
type ToggleExecutor struct {
	FS    FileSystemPort
	Paths Paths
	Now   func() time.Time
}

func NewToggleExecutor(fs FileSystemPort, paths Paths) *ToggleExecutor {
	return &ToggleExecutor{FS: fs, Paths: paths, Now: time.Now}
}

func (t *ToggleExecutor) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

// Enable materializes a file asset under its install directory and returns
// updated copies of the enablement record and local scan (both passed by
// value). On failure it returns the unchanged record and scan together with
// an InstallError, which Session records as a warning.
func (t *ToggleExecutor) Enable(ctx context.Context, cat *Catalog, enablement EnablementRecord, scan LocalScan, key AssetKey) (EnablementRecord, LocalScan, error) {
	entry, ok := cat.Entry(key)
	if !ok {
		return enablement, scan, fmt.Errorf("%s: %w", key, ErrUsage)
	}

	status := LocalStatusFor(entry, scan)
	if status == StatusSame {
		// Idempotent: already enabled and installed byte-identical.
		return enablement.SetExplicitIfNeeded(key, true, inheritedValue(key, cat, enablement)), scan, nil
	}

	before := enablement
	inherited := inheritedValue(key, cat, enablement)
	after := before.SetExplicitIfNeeded(key, true, inherited)

	installDir := t.Paths.InstallDir(entry.Kind)
	installPath := t.FS.Join(installDir, installRelPath(entry.Kind, entry.Path))

	if err := t.FS.CreateDir(ctx, t.FS.Dir(installPath), 0o755); err != nil {
		return before, scan, InstallError{Key: key, Cause: err}
	}

	var backedUp bool
	var backupPath string
	if status == StatusDiff {
		var err error
		backupPath, err = t.backupFile(ctx, entry.Kind, entry.Path, installPath)
		if err != nil {
			return before, scan, InstallError{Key: key, Cause: err}
		}
		backedUp = true
	}

	if err := t.writeInstallFile(ctx, installPath, entry.SourcePath); err != nil {
		_ = t.FS.RemoveAll(ctx, installPath)
		if backedUp {
			_ = t.FS.Copy(ctx, backupPath, installPath)
		}
		return before, scan, InstallError{Key: key, Cause: err}
	}

	data, err := t.FS.ReadFile(ctx, installPath)
	if err != nil {
		return before, scan, InstallError{Key: key, Cause: err}
	}
	newScan := cloneScan(scan)
	newScan.Present[key] = true
	newScan.Hashes[key] = sha256.Sum256(data)

	return after, newScan, nil
}

// Disable removes a materialized file asset. On failure the enablement
// mutation is reverted and, if the file had already been deleted, it is
// restored from the backup made in step 2.
func (t *ToggleExecutor) Disable(ctx context.Context, cat *Catalog, enablement EnablementRecord, scan LocalScan, key AssetKey) (EnablementRecord, LocalScan, error) {
	entry, ok := cat.Entry(key)
	if !ok {
		return enablement, scan, fmt.Errorf("%s: %w", key, ErrUsage)
	}

	status := LocalStatusFor(entry, scan)
	if status == StatusMissing {
		// No-op: already absent, nothing to delete or back up.
		return enablement, scan, nil
	}

	before := enablement
	inherited := inheritedValue(key, cat, enablement)
	after := before.ClearIfInheritedMatches(key, false, inherited)

	installDir := t.Paths.InstallDir(entry.Kind)
	installPath := t.FS.Join(installDir, installRelPath(entry.Kind, entry.Path))

	var backedUp bool
	var backupPath string
	if status == StatusDiff {
		var err error
		backupPath, err = t.backupFile(ctx, entry.Kind, entry.Path, installPath)
		if err != nil {
			return before, scan, RemoveError{Key: key, Cause: err}
		}
		backedUp = true
	}

	if err := t.FS.RemoveAll(ctx, installPath); err != nil {
		if backedUp {
			_ = t.FS.Copy(ctx, backupPath, installPath)
		}
		return before, scan, RemoveError{Key: key, Cause: err}
	}

	t.pruneEmptyAncestors(ctx, t.FS.Dir(installPath), installDir)

	newScan := cloneScan(scan)
	newScan.Present[key] = false
	delete(newScan.Hashes, key)

	return after, newScan, nil
}

// Toggle flips the effective value of key and dispatches to Enable or Disable.
func (t *ToggleExecutor) Toggle(ctx context.Context, cat *Catalog, enablement EnablementRecord, scan LocalScan, key AssetKey) (EnablementRecord, LocalScan, error) {
	current := resolveEffective(explicitPtr(enablement, key), inheritedValue(key, cat, enablement))
	if current {
		return t.Disable(ctx, cat, enablement, scan, key)
	}
	return t.Enable(ctx, cat, enablement, scan, key)
}

// ToggleCollection dispatches each member's per-asset toggle to the desired
// state, skipping members already matching it, accumulating per-member
// failures as warnings without aborting the batch. The collection's own
// explicit toggle is set last.
func (t *ToggleExecutor) ToggleCollection(ctx context.Context, cat *Catalog, enablement EnablementRecord, scan LocalScan, collectionID string, desired bool) (EnablementRecord, LocalScan, []error) {
	var col *CollectionEntry
	for i := range cat.Collections {
		if cat.Collections[i].ID == collectionID {
			col = &cat.Collections[i]
			break
		}
	}
	if col == nil {
		return enablement, scan, []error{fmt.Errorf("collection %q: %w", collectionID, ErrUsage)}
	}

	var warnings []error
	for _, item := range col.Items {
		key := AssetKey{Kind: item.Kind, Path: item.Path}
		explicit, hasExplicit := enablement.Get(key)
		if hasExplicit && explicit == desired {
			continue
		}

		var err error
		if desired {
			enablement, scan, err = t.Enable(ctx, cat, enablement, scan, key)
		} else {
			enablement, scan, err = t.Disable(ctx, cat, enablement, scan, key)
		}
		if err != nil {
			warnings = append(warnings, err)
		}
	}

	enablement = enablement.SetExplicit(AssetKey{Kind: KindCollection, Path: col.Path}, desired)
	return enablement, scan, warnings
}

// Reset deletes every installed file asset and clears all explicit toggles.
// No backups are taken; per-file deletion errors are recorded as warnings and
// do not abort the operation.
func (t *ToggleExecutor) Reset(ctx context.Context, cat *Catalog, scan LocalScan) (EnablementRecord, LocalScan, []error) {
	var warnings []error
	newScan := cloneScan(scan)

	for _, entry := range cat.FileEntriesSorted() {
		key := entry.Key()
		if !newScan.Present[key] {
			continue
		}
		installDir := t.Paths.InstallDir(entry.Kind)
		installPath := t.FS.Join(installDir, installRelPath(entry.Kind, entry.Path))
		if err := t.FS.RemoveAll(ctx, installPath); err != nil {
			warnings = append(warnings, RemoveError{Key: key, Cause: err})
			continue
		}
		t.pruneEmptyAncestors(ctx, t.FS.Dir(installPath), installDir)
		newScan.Present[key] = false
		delete(newScan.Hashes, key)
	}

	return NewEnablementRecord(), newScan, warnings
}

func (t *ToggleExecutor) writeInstallFile(ctx context.Context, installPath, sourcePath string) error {
	data, err := t.FS.ReadFile(ctx, sourcePath)
	if err != nil {
		return err
	}
	tmp := installPath + ".tmp"
	if err := t.FS.WriteFile(ctx, tmp, data, 0o644); err != nil {
		return err
	}
	if err := t.FS.Move(ctx, tmp, installPath); err != nil {
		_ = t.FS.RemoveAll(ctx, tmp)
		return err
	}
	return nil
}

func (t *ToggleExecutor) backupFile(ctx context.Context, kind AssetKind, relPath, installPath string) (string, error) {
	ts := t.now().UTC().Format("20060102T150405Z")
	backupPath := t.FS.Join(t.Paths.BackupRoot, ts, KindDir(kind), installRelPath(kind, relPath))
	if err := t.FS.CreateDir(ctx, t.FS.Dir(backupPath), 0o755); err != nil {
		return "", err
	}
	if err := t.FS.Copy(ctx, installPath, backupPath); err != nil {
		return "", err
	}
	return backupPath, nil
}

// pruneEmptyAncestors removes dir and its empty ancestors up to (but not
// including) stopAt. Failures are ignored: pruning is best-effort.
func (t *ToggleExecutor) pruneEmptyAncestors(ctx context.Context, dir, stopAt string) {
	for dir != "" && dir != stopAt && dir != t.FS.Dir(dir) {
		entries, err := t.FS.ReadDir(ctx, dir)
		if err != nil || len(entries) > 0 {
			return
		}
		if err := t.FS.Remove(ctx, dir); err != nil {
			return
		}
		dir = t.FS.Dir(dir)
	}
}

func cloneScan(s LocalScan) LocalScan {
	out := NewLocalScan()
	for k, v := range s.Hashes {
		out.Hashes[k] = v
	}
	for k, v := range s.Present {
		out.Present[k] = v
	}
	out.Orphans = append([]string(nil), s.Orphans...)
	return out
}

func explicitPtr(enablement EnablementRecord, key AssetKey) *bool {
	if v, ok := enablement.Get(key); ok {
		return boolPtr(v)
	}
	return nil
}

// SetExplicitIfNeeded sets key's explicit entry to value, unless the
// collection-inherited value already equals value, in which case any
// existing explicit entry is cleared (spec §4.7 Enable step 1).
func (r EnablementRecord) SetExplicitIfNeeded(key AssetKey, value bool, inherited *bool) EnablementRecord {
	if inherited != nil && *inherited == value {
		return r.Clear(key)
	}
	return r.SetExplicit(key, value)
}

// ClearIfInheritedMatches clears key's explicit entry when no inherited
// value is present or it already equals value; otherwise it sets the
// explicit entry to value (spec §4.7 Disable step 1).
func (r EnablementRecord) ClearIfInheritedMatches(key AssetKey, value bool, inherited *bool) EnablementRecord {
	if inherited == nil || *inherited == value {
		return r.Clear(key)
	}
	return r.SetExplicit(key, value)
}
