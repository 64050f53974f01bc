package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Session owns the mutable reconciliation state for one open project: the
// active snapshot, catalog, enablement record, local scan, derived views,
// dirty flag, and warning list. It is the sole mutator of the enablement
// record; the catalog, local scan, and views are treated as immutable
// between rebuilds.
type Session struct {
	deps   Dependencies
	cfg    AppConfig
	paths  Paths
	logger *slog.Logger
	now    func() time.Time

	snapshot   *Snapshot
	catalog    *Catalog
	enablement EnablementRecord
	scan       LocalScan
	views      []AssetView

	dirty    bool
	warnings []error
	filter   string

	toggle *ToggleExecutor
}

// Open resolves paths for root, loads any persisted enablement record, and
// returns a Session with an empty catalog/snapshot — callers must call
// Reload before the session has any views.
func Open(ctx context.Context, deps Dependencies, cfg AppConfig, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	paths, err := ResolvePaths(ctx, deps.FileSystem, cfg.ProjectRoot)
	if err != nil {
		return nil, err
	}

	rec, err := LoadEnablement(ctx, deps.FileSystem, deps.Schema, paths.EnablementFile)
	if err != nil {
		return nil, err
	}

	s := &Session{
		deps:       deps,
		cfg:        cfg,
		paths:      paths,
		logger:     logger,
		now:        time.Now,
		enablement: rec,
		scan:       NewLocalScan(),
		toggle:     NewToggleExecutor(deps.FileSystem, paths),
	}
	return s, nil
}

// Paths exposes the resolved filesystem locations for the presentation layer.
func (s *Session) Paths() Paths { return s.paths }

// Reload performs sync + catalog rebuild + rescan + reproject, guarded
// against concurrent invocations against the same project root. Failures
// during sync that still yield a usable snapshot are recorded as warnings,
// not returned as errors. A busy lock (ErrLockBusy), a sync with no usable
// snapshot (ErrStartup), and catalog build or local scan failures are
// returned.
func (s *Session) Reload(ctx context.Context, force bool) error {
	attemptID := uuid.NewString()
	s.logger.Debug("sync attempt starting", "attempt_id", attemptID, "repo", s.cfg.UpstreamRepo, "force", force)

	var snap Snapshot
	var cat *Catalog
	var scan LocalScan
	err := s.withLock(ctx, func() error {
		var err error
		var warnings []error
		snap, warnings, err = AcquireSnapshot(ctx, s.deps.FileSystem, s.deps.Upstream, s.paths, s.cfg.UpstreamRepo, s.cfg.FreshnessWindow, s.cfg.SnapshotRetain, force, s.snapshot, s.now())
		if err != nil {
			return err
		}
		s.appendWarnings(warnings)

		cat, err = BuildCatalog(ctx, s.deps.FileSystem, snap.RootDir)
		if err != nil {
			return fmt.Errorf("build catalog: %w", err)
		}
		s.appendWarnings(cat.Warnings)

		scan, err = ScanLocal(ctx, s.deps.FileSystem, s.paths, cat)
		if err != nil {
			return fmt.Errorf("scan local: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("reload failed", "attempt_id", attemptID, "error", err)
		return err
	}

	s.snapshot = &snap
	s.catalog = cat
	s.scan = scan
	s.reproject()
	s.logger.Info("reload complete", "attempt_id", attemptID, "commit", snap.CommitID, "instructions", len(cat.Instructions), "prompts", len(cat.Prompts), "chatmodes", len(cat.ChatModes), "collections", len(cat.Collections))
	s.notifyReloadComplete(ctx, snap.CommitID)
	return nil
}

// notifyReloadComplete sends a best-effort desktop notification when reload
// notifications are enabled, mirroring the teacher's post-hook notification
// that fires after a successful backup. A missing NotificationPort or a
// disabled config silently skips it; a delivery failure is logged, not
// returned, since it never affects reconciliation outcome.
func (s *Session) notifyReloadComplete(ctx context.Context, commitID string) {
	if !s.cfg.NotifyOnReload || s.deps.Notification == nil {
		return
	}
	title := "awesome-copilot-tui"
	message := fmt.Sprintf("Reload complete (%s)", commitID)
	if err := s.deps.Notification.Send(ctx, title, message, s.cfg.NotificationSound); err != nil {
		s.logger.Debug("notification failed", "error", err)
	}
}

// Toggle flips a single asset's effective state.
func (s *Session) Toggle(ctx context.Context, key AssetKey) error {
	if s.catalog == nil {
		return fmt.Errorf("session not loaded: %w", ErrUsage)
	}
	rec, scan, err := s.toggle.Toggle(ctx, s.catalog, s.enablement, s.scan, key)
	s.enablement = rec
	s.scan = scan
	s.dirty = true
	s.reproject()
	if err != nil {
		s.appendWarnings([]error{err})
	}
	return nil
}

// Enable materializes a single file asset and sets its explicit state true,
// or clears the explicit entry when an owning collection already enables it.
func (s *Session) Enable(ctx context.Context, key AssetKey) error {
	if s.catalog == nil {
		return fmt.Errorf("session not loaded: %w", ErrUsage)
	}
	rec, scan, err := s.toggle.Enable(ctx, s.catalog, s.enablement, s.scan, key)
	s.enablement = rec
	s.scan = scan
	s.dirty = true
	s.reproject()
	if err != nil {
		s.appendWarnings([]error{err})
	}
	return nil
}

// Disable removes a single file asset and clears its explicit entry, or sets
// it false when an owning collection enables the asset. An asset that is not
// installed is left as is.
func (s *Session) Disable(ctx context.Context, key AssetKey) error {
	if s.catalog == nil {
		return fmt.Errorf("session not loaded: %w", ErrUsage)
	}
	rec, scan, err := s.toggle.Disable(ctx, s.catalog, s.enablement, s.scan, key)
	s.enablement = rec
	s.scan = scan
	s.dirty = true
	s.reproject()
	if err != nil {
		s.appendWarnings([]error{err})
	}
	return nil
}

// ToggleCollection sets every member of collectionID to desired, then the
// collection's own explicit toggle.
func (s *Session) ToggleCollection(ctx context.Context, collectionID string, desired bool) error {
	if s.catalog == nil {
		return fmt.Errorf("session not loaded: %w", ErrUsage)
	}
	batchID := uuid.NewString()
	s.logger.Debug("toggle collection batch starting", "batch_id", batchID, "collection", collectionID, "desired", desired)
	rec, scan, warnings := s.toggle.ToggleCollection(ctx, s.catalog, s.enablement, s.scan, collectionID, desired)
	s.enablement = rec
	s.scan = scan
	s.dirty = true
	s.appendWarnings(warnings)
	s.reproject()
	return nil
}

// Reset deletes every installed file asset and clears all explicit toggles.
func (s *Session) Reset(ctx context.Context) error {
	if s.catalog == nil {
		return fmt.Errorf("session not loaded: %w", ErrUsage)
	}
	batchID := uuid.NewString()
	s.logger.Debug("reset batch starting", "batch_id", batchID)
	rec, scan, warnings := s.toggle.Reset(ctx, s.catalog, s.scan)
	s.enablement = rec
	s.scan = scan
	s.dirty = true
	s.appendWarnings(warnings)
	s.reproject()
	return nil
}

// Save persists the in-memory enablement record and clears the dirty flag,
// guarded against a concurrent invocation saving at the same time.
func (s *Session) Save(ctx context.Context) error {
	var rec EnablementRecord
	err := s.withLock(ctx, func() error {
		var err error
		rec, err = SaveEnablement(ctx, s.deps.FileSystem, s.now(), s.paths.EnablementFile, s.enablement)
		return err
	})
	if err != nil {
		s.logger.Error("save failed", "error", err)
		return err
	}
	s.enablement = rec
	s.dirty = false
	return nil
}

// withLock runs fn holding the cross-process cache/enablement guard, when a
// LockPort is configured. A missing LockPort (as in tests exercising the
// session directly) runs fn unguarded. While fn runs, the held lock's
// timestamp is refreshed on lockRefreshInterval so a long-running reload
// isn't mistaken for stale by a concurrent invocation's liveness check.
func (s *Session) withLock(ctx context.Context, fn func() error) error {
	if s.deps.Lock == nil {
		return fn()
	}
	info := LockInfo{ProjectRoot: s.paths.Root, CacheRoot: s.paths.CacheRoot}
	if s.deps.Process != nil {
		info.PID = s.deps.Process.GetPID()
		info.Hostname = s.deps.Process.Hostname()
	}
	if err := s.deps.Lock.AcquireLock(ctx, s.paths.LockDir, info); err != nil {
		return fmt.Errorf("acquire lock: %v: %w", err, ErrLockBusy)
	}
	done := make(chan struct{})
	go s.refreshLockPeriodically(ctx, done)
	defer func() {
		close(done)
		if err := s.deps.Lock.ReleaseLock(ctx, s.paths.LockDir); err != nil {
			s.logger.Warn("release lock failed", "error", err)
		}
	}()
	return fn()
}

func (s *Session) refreshLockPeriodically(ctx context.Context, done <-chan struct{}) {
	ticker := time.NewTicker(lockRefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.deps.Lock.RefreshLock(ctx, s.paths.LockDir); err != nil {
				s.logger.Warn("refresh lock failed", "error", err)
			}
		}
	}
}

// Filter sets a case-insensitive substring filter applied by SnapshotViews.
func (s *Session) Filter(query string) { s.filter = strings.TrimSpace(query) }

// ClearFilter removes any active filter.
func (s *Session) ClearFilter() { s.filter = "" }

// SnapshotViews returns the current view sequence, narrowed by the active
// filter if any. Filtering never reorders or mutates fields other than which
// views are included.
func (s *Session) SnapshotViews() []AssetView {
	if s.filter == "" {
		return s.views
	}
	q := strings.ToLower(s.filter)
	out := make([]AssetView, 0, len(s.views))
	for _, v := range s.views {
		if viewMatchesFilter(v, q) {
			out = append(out, v)
		}
	}
	return out
}

// Warnings returns the accumulated session warning list.
func (s *Session) Warnings() []error { return s.warnings }

// ClearWarnings empties the warning list on explicit user action.
func (s *Session) ClearWarnings() { s.warnings = nil }

// Dirty reports whether the enablement record has unsaved changes.
func (s *Session) Dirty() bool { return s.dirty }

func (s *Session) reproject() {
	if s.catalog == nil {
		s.views = nil
		return
	}
	s.views = Project(s.catalog, s.enablement, s.scan)
}

func (s *Session) appendWarnings(errs []error) {
	for _, e := range errs {
		if e != nil {
			s.warnings = append(s.warnings, e)
			s.logger.Warn("reconciliation warning", "error", e)
		}
	}
}

func viewMatchesFilter(v AssetView, q string) bool {
	if strings.Contains(strings.ToLower(v.Name), q) ||
		strings.Contains(strings.ToLower(v.Path), q) ||
		strings.Contains(strings.ToLower(v.Slug), q) ||
		strings.Contains(strings.ToLower(v.Description), q) {
		return true
	}
	for _, tag := range v.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
