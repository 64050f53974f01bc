//nolint:gci,gofumpt
package lock

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/astrosteveo/awesome-copilot-tui/internal/usecase"
)

const (
	osLinux  = "linux"
	osDarwin = "darwin"
)

// staleLockMaxAge bounds how long a held lock is trusted without a refresh.
// A Session refreshes its held lock hourly while a reload/save is in flight
// (usecase.lockRefreshInterval), so three missed refreshes is a generous
// margin before a stale timestamp alone condemns the lock — the liveness
// probe in validateLockFile usually catches a dead holder well before that.
const staleLockMaxAge = 3 * time.Hour

// Adapter implements LockPort with a PID-file inside a lock directory,
// guarding one project's cache extraction and enablement save against a
// concurrent CLI invocation against the same root. Unlike a long-running
// daemon, a single invocation only ever holds this lock for the duration of
// one Reload or Save call, so the adapter does not need to defend against a
// PID being reused by an unrelated process across a reboot — a live-process
// check plus a generous staleness window is enough.
type Adapter struct {
	logger *slog.Logger
}

// New creates a new lock adapter.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		panic("lock adapter requires logger")
	}
	return &Adapter{logger: logger}
}

// AcquireLock attempts to acquire the exclusive guard at path.
func (a *Adapter) AcquireLock(ctx context.Context, path string, info usecase.LockInfo) error {
	lockDir := path
	if err := os.Mkdir(lockDir, 0o750); err == nil {
		return a.createLockFile(filepath.Join(lockDir, "info"), info)
	} else if !os.IsExist(err) {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}

	lockFile := filepath.Join(lockDir, "info")
	if a.validateLockFile(lockFile) {
		return fmt.Errorf("lock is held by another active process")
	}

	a.logger.Debug("clearing stale lock", "path", lockDir, "project_root", info.ProjectRoot, "cache_root", info.CacheRoot)
	if err := os.RemoveAll(lockDir); err != nil {
		return fmt.Errorf("failed to remove stale lock: %w", err)
	}
	if err := os.Mkdir(lockDir, 0o750); err != nil {
		return fmt.Errorf("failed to create lock after cleanup: %w", err)
	}
	return a.createLockFile(lockFile, info)
}

// ReleaseLock releases a held lock.
func (a *Adapter) ReleaseLock(ctx context.Context, path string) error {
	return os.RemoveAll(path)
}

// IsLocked reports whether path is held by a live process.
func (a *Adapter) IsLocked(ctx context.Context, path string) (bool, usecase.LockInfo, error) {
	lockFile := filepath.Join(path, "info")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false, usecase.LockInfo{}, nil
	}
	if _, err := os.Stat(lockFile); os.IsNotExist(err) {
		return false, usecase.LockInfo{}, nil
	}

	info, err := a.readLockInfo(lockFile)
	if err != nil {
		return false, usecase.LockInfo{}, err
	}

	return a.validateLockFile(lockFile), info, nil
}

// RefreshLock rewrites the held lock's start time to now, keeping a
// long-running reload from being mistaken for stale by a concurrent
// invocation's liveness check.
func (a *Adapter) RefreshLock(ctx context.Context, path string) error {
	lockFile := filepath.Join(path, "info")

	info, err := a.readLockInfo(lockFile)
	if err != nil {
		return fmt.Errorf("failed to read lock info: %w", err)
	}
	info.StartTime = time.Now()
	return a.createLockFile(lockFile, info)
}

// createLockFile writes info as the lock body, filling in anything the
// caller left zero.
func (a *Adapter) createLockFile(lockPath string, info usecase.LockInfo) error {
	if info.PID == 0 {
		info.PID = os.Getpid()
	}
	if info.StartTime.IsZero() {
		info.StartTime = time.Now()
	}
	if info.Hostname == "" {
		hostname, _ := os.Hostname()
		info.Hostname = hostname
	}

	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal lock info: %w", err)
	}
	return os.WriteFile(lockPath, data, 0o600)
}

// readLockInfo reads the lock body, falling back to the legacy
// PID\nTimestamp\nHostname text format for a lock directory left behind by
// an older build.
func (a *Adapter) readLockInfo(lockPath string) (usecase.LockInfo, error) {
	data, err := os.ReadFile(lockPath) // #nosec G304 - lockPath is controlled by the adapter
	if err != nil {
		return usecase.LockInfo{}, err
	}

	var info usecase.LockInfo
	if err := json.Unmarshal(data, &info); err == nil {
		return info, nil
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) < 2 {
		return usecase.LockInfo{}, fmt.Errorf("invalid lock file format")
	}

	pid, err := strconv.Atoi(lines[0])
	if err != nil {
		return usecase.LockInfo{}, fmt.Errorf("invalid PID in lock file: %w", err)
	}
	startTimeUnix, err := strconv.ParseInt(lines[1], 10, 64)
	if err != nil {
		return usecase.LockInfo{}, fmt.Errorf("invalid timestamp in lock file: %w", err)
	}
	hostname := ""
	if len(lines) > 2 {
		hostname = lines[2]
	}

	return usecase.LockInfo{PID: pid, StartTime: time.Unix(startTimeUnix, 0), Hostname: hostname}, nil
}

// validateLockFile reports whether the lock recorded at lockPath is still
// held: fresh enough, and (when the holder is on this host) a live PID.
func (a *Adapter) validateLockFile(lockPath string) bool {
	info, err := a.readLockInfo(lockPath)
	if err != nil {
		return false // invalid file format means invalid lock
	}

	if time.Since(info.StartTime) > staleLockMaxAge {
		return false
	}

	if info.Hostname != "" {
		if hostname, err := os.Hostname(); err == nil && hostname != info.Hostname {
			// Can't probe a PID on a different host; trust the timestamp.
			return true
		}
	}

	return a.isProcessRunning(info.PID)
}
