package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/astrosteveo/awesome-copilot-tui/internal/usecase"
)

// Adapter implements usecase.ConfigPort using TOML files on disk.
type Adapter struct {
	logger *slog.Logger
}

// New creates a new config adapter.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		panic("config adapter requires logger")
	}
	return &Adapter{logger: logger}
}

// Load reads config from path or returns defaults when the file is missing.
func (a *Adapter) Load(ctx context.Context, path string) (usecase.ConfigFile, error) {
	_ = ctx
	if strings.TrimSpace(path) == "" {
		return usecase.ConfigFile{}, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path) // #nosec G304 - path is controlled by usecase
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return usecase.DefaultConfigFile(), nil
		}
		return usecase.ConfigFile{}, err
	}

	cfg := usecase.DefaultConfigFile()
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return usecase.ConfigFile{}, fmt.Errorf("parse config toml: %w", err)
	}

	return cfg, nil
}

// Save writes config to path in TOML format with inline documentation.
func (a *Adapter) Save(ctx context.Context, path string, cfg usecase.ConfigFile) error {
	_ = ctx
	if strings.TrimSpace(path) == "" {
		return errors.New("config path is empty")
	}

	content := renderCommentedTOML(cfg)

	// #nosec G306 G304 - config is not secret, path is controlled by usecase.
	return os.WriteFile(path, []byte(content), 0o644)
}

//nolint:lll // template readability is more important than line length.
func renderCommentedTOML(cfg usecase.ConfigFile) string {
	return fmt.Sprintf(`# awesome-copilot-tui configuration
# https://github.com/astrosteveo/awesome-copilot-tui#configuration

# ── Upstream ─────────────────────────────────────────────────────
[upstream]

# "owner/repo" slug of the upstream Copilot asset repository.
repo = %[1]q

# How many hours a cached snapshot stays "fresh" before a reload refetches it.
freshness_hours = %[2]d

# ── Cache ────────────────────────────────────────────────────────
[cache]

# Number of most-recent snapshots to retain after each successful sync.
retain = %[3]d

# ── UI ───────────────────────────────────────────────────────────
[ui]

# Color preference: auto, always, never. The CLI's table, warning and log
# output picks color from terminal detection and NO_COLOR, not from this value.
color = %[4]q

# ── Logging ──────────────────────────────────────────────────────
[logging]

# Log directory. Supports ~, $HOME, ${HOME}. Created automatically.
dir = %[5]q

# Minimum log level: debug, info, warn, error.
level = %[6]q

# ── Notifications ───────────────────────────────────────────────
[notifications]

# Send a desktop notification when a reload finishes.
enabled = %[7]t

# Notification sound ("default" = system default).
sound = %[8]q
`,
		cfg.Upstream.Repo,
		cfg.Upstream.FreshnessHours,
		cfg.Cache.Retain,
		cfg.UI.Color,
		cfg.Logging.Dir,
		cfg.Logging.Level,
		cfg.Notifications.Enabled,
		cfg.Notifications.Sound,
	)
}
