package usecase

import (
	"context"
	"fmt"
)

// ResolvePaths maps a project root to the fixed set of locations the engine
// reads and writes: asset install directories, cache root, backup root, and
// the enablement file. P must be an existing directory.
func ResolvePaths(ctx context.Context, fs FileSystemPort, root string) (Paths, error) {
	abs, err := fs.Abs(ctx, root)
	if err != nil {
		return Paths{}, fmt.Errorf("resolve project root %q: %w", root, ErrStartup)
	}

	info, err := fs.Stat(ctx, abs)
	if err != nil || !info.IsDir() {
		return Paths{}, fmt.Errorf("project root %q does not exist: %w", abs, ErrStartup)
	}

	githubDir := fs.Join(abs, ".github")
	return Paths{
		Root:            abs,
		InstructionsDir: fs.Join(githubDir, "instructions"),
		PromptsDir:      fs.Join(githubDir, "prompts"),
		ChatModesDir:    fs.Join(githubDir, "chatmodes"),
		CacheRoot:       fs.Join(abs, ".awesome-copilot-tui", "cache"),
		BackupRoot:      fs.Join(abs, ".awesome-copilot-tui", "backups"),
		EnablementFile:  fs.Join(abs, "data", "enablement.json"),
		LockDir:         fs.Join(abs, ".awesome-copilot-tui", "lock"),
	}, nil
}
