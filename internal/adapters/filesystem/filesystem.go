package filesystem

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/astrosteveo/awesome-copilot-tui/internal/usecase"
)

// Adapter implements usecase.FileSystemPort using the standard os and
// filepath packages.
type Adapter struct {
	logger *slog.Logger
}

// New creates a new filesystem adapter.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		panic("filesystem adapter requires logger")
	}
	return &Adapter{logger: logger}
}

// ReadFile reads file content.
func (a *Adapter) ReadFile(ctx context.Context, path string) ([]byte, error) {
	return os.ReadFile(path) // #nosec G304 - paths are controlled by usecase
}

// WriteFile writes content to file.
func (a *Adapter) WriteFile(ctx context.Context, path string, data []byte, perm int) error {
	if perm < 0 || perm > 0o777 {
		perm = 0o644
	}
	// #nosec G115 - perm is validated to be within safe range
	return os.WriteFile(path, data, fs.FileMode(perm))
}

// CreateDir creates directory with permissions, including any missing parents.
func (a *Adapter) CreateDir(ctx context.Context, path string, perm int) error {
	if perm < 0 || perm > 0o777 {
		perm = 0o755
	}
	// #nosec G115 - perm is validated to be within safe range
	return os.MkdirAll(path, fs.FileMode(perm))
}

// Remove removes a single file or empty directory.
func (a *Adapter) Remove(ctx context.Context, path string) error {
	return os.Remove(path)
}

// RemoveAll removes a path and all contents beneath it.
func (a *Adapter) RemoveAll(ctx context.Context, path string) error {
	return os.RemoveAll(path)
}

// Stat returns file info.
func (a *Adapter) Stat(ctx context.Context, path string) (usecase.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return &fileInfoWrapper{info}, nil
}

// Walk traverses a directory tree.
func (a *Adapter) Walk(ctx context.Context, root string, walkFn usecase.WalkFunc) error {
	return filepath.Walk(root, func(path string, info fs.FileInfo, err error) error {
		var fileInfo usecase.FileInfo
		if info != nil {
			fileInfo = &fileInfoWrapper{info}
		}
		return walkFn(path, fileInfo, err)
	})
}

// ReadDir lists directory entries.
func (a *Adapter) ReadDir(ctx context.Context, path string) ([]usecase.DirEntry, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	result := make([]usecase.DirEntry, 0, len(entries))
	for _, entry := range entries {
		result = append(result, &dirEntryWrapper{entry})
	}
	return result, nil
}

// Copy copies file content from src to dst, preserving the source's mode.
func (a *Adapter) Copy(ctx context.Context, src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return err
	}

	srcFile, err := os.Open(src) // #nosec G304 - paths are controlled by usecase
	if err != nil {
		return err
	}
	defer func() { _ = srcFile.Close() }()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.Create(dst) // #nosec G304 - paths are controlled by usecase
	if err != nil {
		return err
	}
	defer func() { _ = dstFile.Close() }()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}
	return os.Chmod(dst, srcInfo.Mode())
}

// Move renames src to dst.
func (a *Adapter) Move(ctx context.Context, src, dst string) error {
	return os.Rename(src, dst)
}

// GetWorkingDir returns the current working directory.
func (a *Adapter) GetWorkingDir(ctx context.Context) (string, error) {
	return os.Getwd()
}

// Abs returns the absolute form of path.
func (a *Adapter) Abs(ctx context.Context, path string) (string, error) {
	return filepath.Abs(path)
}

// Join joins path elements.
func (a *Adapter) Join(elements ...string) string {
	return filepath.Join(elements...)
}

// Base returns the last element of path.
func (a *Adapter) Base(path string) string {
	return filepath.Base(path)
}

// Dir returns the directory portion of path.
func (a *Adapter) Dir(path string) string {
	return filepath.Dir(path)
}

// Rel returns targpath relative to basepath.
func (a *Adapter) Rel(basepath, targpath string) (string, error) {
	return filepath.Rel(basepath, targpath)
}

// Clean returns the cleaned path.
func (a *Adapter) Clean(path string) string {
	return filepath.Clean(path)
}

// IsNotExist reports whether err indicates that a path does not exist. Also
// covers syscall.ENOTDIR (a path component is not a directory).
func (a *Adapter) IsNotExist(err error) bool {
	return os.IsNotExist(err) || errors.Is(err, syscall.ENOTDIR)
}

// IsExist reports whether err indicates that a path already exists.
func (a *Adapter) IsExist(err error) bool {
	return os.IsExist(err)
}

// TempDir creates a temporary directory under dir.
func (a *Adapter) TempDir(ctx context.Context, dir, prefix string) (string, error) {
	return os.MkdirTemp(dir, prefix)
}

// fileInfoWrapper wraps os.FileInfo to implement usecase.FileInfo.
type fileInfoWrapper struct {
	fs.FileInfo
}

func (w *fileInfoWrapper) Name() string       { return w.FileInfo.Name() }
func (w *fileInfoWrapper) Size() int64        { return w.FileInfo.Size() }
func (w *fileInfoWrapper) Mode() int          { return int(w.FileInfo.Mode()) }
func (w *fileInfoWrapper) ModTime() time.Time { return w.FileInfo.ModTime() }
func (w *fileInfoWrapper) IsDir() bool        { return w.FileInfo.IsDir() }
func (w *fileInfoWrapper) IsSymlink() bool    { return w.FileInfo.Mode()&os.ModeSymlink != 0 }
func (w *fileInfoWrapper) IsRegular() bool    { return w.FileInfo.Mode().IsRegular() }
func (w *fileInfoWrapper) Sys() interface{}   { return w.FileInfo.Sys() }

type dirEntryWrapper struct {
	fs.DirEntry
}

func (w *dirEntryWrapper) Name() string { return w.DirEntry.Name() }
func (w *dirEntryWrapper) IsDir() bool  { return w.DirEntry.IsDir() }
