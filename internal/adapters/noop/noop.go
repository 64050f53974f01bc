// Package noop provides placeholder implementations for every usecase port.
package noop

import (
	"context"
	"errors"
	"log/slog"

	"github.com/astrosteveo/awesome-copilot-tui/internal/usecase"
)

// Adapter implements every usecase port with no-op implementations. Used as
// a placeholder wherever a real adapter is not yet wired.
type Adapter struct {
	logger *slog.Logger
}

var errNotImplemented = errors.New("operation not implemented in no-op adapter")

// New creates a new no-op adapter.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		panic("noop adapter requires logger")
	}
	return &Adapter{logger: logger}
}

// ReadFile returns error for filesystem operations
func (a Adapter) ReadFile(ctx context.Context, path string) ([]byte, error) {
	return nil, errNotImplemented
}

// WriteFile returns error for filesystem operations
func (a Adapter) WriteFile(ctx context.Context, path string, data []byte, perm int) error {
	return errNotImplemented
}

// CreateDir returns error for filesystem operations
func (a Adapter) CreateDir(ctx context.Context, path string, perm int) error {
	return errNotImplemented
}

// Remove returns error for filesystem operations
func (a Adapter) Remove(ctx context.Context, path string) error {
	return errNotImplemented
}

// RemoveAll returns error for filesystem operations
func (a Adapter) RemoveAll(ctx context.Context, path string) error {
	return errNotImplemented
}

// Stat returns error for filesystem operations
func (a Adapter) Stat(ctx context.Context, path string) (usecase.FileInfo, error) {
	return nil, errNotImplemented
}

// Walk returns error for filesystem operations
func (a Adapter) Walk(ctx context.Context, root string, walkFn usecase.WalkFunc) error {
	return errNotImplemented
}

// ReadDir returns error for filesystem operations
func (a Adapter) ReadDir(ctx context.Context, path string) ([]usecase.DirEntry, error) {
	return nil, errNotImplemented
}

// Copy returns error for filesystem operations
func (a Adapter) Copy(ctx context.Context, src, dst string) error {
	return errNotImplemented
}

// Move returns error for filesystem operations
func (a Adapter) Move(ctx context.Context, src, dst string) error {
	return errNotImplemented
}

// GetWorkingDir returns error for filesystem operations
func (a Adapter) GetWorkingDir(ctx context.Context) (string, error) {
	return "", errNotImplemented
}

// Abs returns error for filesystem operations
func (a Adapter) Abs(ctx context.Context, path string) (string, error) {
	return "", errNotImplemented
}

// Join returns empty string for filesystem operations
func (a Adapter) Join(elements ...string) string {
	return ""
}

// Base returns empty string for filesystem operations
func (a Adapter) Base(path string) string {
	return ""
}

// Dir returns empty string for filesystem operations
func (a Adapter) Dir(path string) string {
	return ""
}

// Rel returns error for filesystem operations
func (a Adapter) Rel(basepath, targpath string) (string, error) {
	return "", errNotImplemented
}

// Clean returns empty string for filesystem operations
func (a Adapter) Clean(path string) string {
	return ""
}

// IsNotExist returns false for filesystem operations
func (a Adapter) IsNotExist(err error) bool {
	return false
}

// IsExist returns false for filesystem operations
func (a Adapter) IsExist(err error) bool {
	return false
}

// TempDir returns error for filesystem operations
func (a Adapter) TempDir(ctx context.Context, dir, prefix string) (string, error) {
	return "", errNotImplemented
}

// FetchArchive returns error for upstream operations
func (a Adapter) FetchArchive(ctx context.Context, repoSlug string) (*usecase.ArchiveFetch, error) {
	return nil, errNotImplemented
}

// Load returns error for config operations
func (a Adapter) Load(ctx context.Context, path string) (usecase.ConfigFile, error) {
	return usecase.ConfigFile{}, errNotImplemented
}

// Save returns error for config operations
func (a Adapter) Save(ctx context.Context, path string, cfg usecase.ConfigFile) error {
	return errNotImplemented
}

// ValidateEnablement returns error for schema operations
func (a Adapter) ValidateEnablement(ctx context.Context, document []byte) error {
	return errNotImplemented
}

// AcquireLock returns error for lock operations
func (a Adapter) AcquireLock(ctx context.Context, path string, info usecase.LockInfo) error {
	return errNotImplemented
}

// ReleaseLock returns error for lock operations
func (a Adapter) ReleaseLock(ctx context.Context, path string) error {
	return errNotImplemented
}

// IsLocked returns error for lock operations
func (a Adapter) IsLocked(ctx context.Context, path string) (bool, usecase.LockInfo, error) {
	return false, usecase.LockInfo{}, errNotImplemented
}

// RefreshLock returns error for lock operations
func (a Adapter) RefreshLock(ctx context.Context, path string) error {
	return errNotImplemented
}

// GetPID returns zero for process operations
func (a Adapter) GetPID() int {
	return 0
}

// Hostname returns empty for process operations
func (a Adapter) Hostname() string {
	return ""
}

// Send does nothing for notification operations
func (a Adapter) Send(ctx context.Context, title, message, sound string) error {
	return nil
}
