package usecase

import (
	"errors"
	"fmt"
)

var (
	// ErrStartup indicates the project root is missing or no snapshot could be
	// obtained and the session held no prior snapshot to fall back on. Fatal.
	ErrStartup = errors.New("startup error")
	// ErrEnablement indicates a schema violation on load, or a failed save.
	ErrEnablement = errors.New("enablement error")
	// ErrUsage indicates user input/usage errors.
	ErrUsage = errors.New("usage error")
	// ErrLockBusy indicates the cache/enablement guard is held by another process.
	ErrLockBusy = errors.New("lock busy")
	// ErrInterrupted indicates a canceled reload.
	ErrInterrupted = errors.New("interrupted")
)

// OfflineWarning is a non-fatal warning recorded when a fetch fails but a
// usable prior snapshot exists.
type OfflineWarning struct {
	Cause error
}

func (w OfflineWarning) Error() string { return fmt.Sprintf("offline: using cached snapshot: %v", w.Cause) }
func (w OfflineWarning) Unwrap() error { return w.Cause }

// InstallError is recorded when Enable fails after rollback.
type InstallError struct {
	Key   AssetKey
	Cause error
}

func (w InstallError) Error() string { return fmt.Sprintf("install %s: %v", w.Key, w.Cause) }
func (w InstallError) Unwrap() error { return w.Cause }

// RemoveError is recorded when Disable fails after rollback.
type RemoveError struct {
	Key   AssetKey
	Cause error
}

func (w RemoveError) Error() string { return fmt.Sprintf("remove %s: %v", w.Key, w.Cause) }
func (w RemoveError) Unwrap() error { return w.Cause }

// PruneWarning is recorded when best-effort cache cleanup fails.
type PruneWarning struct {
	Dir   string
	Cause error
}

func (w PruneWarning) Error() string { return fmt.Sprintf("prune %s: %v", w.Dir, w.Cause) }
func (w PruneWarning) Unwrap() error { return w.Cause }
