package usecase

import (
	"fmt"
	"strings"
	"time"
)

// RuntimeConfigFromFile converts the on-disk ConfigFile, a resolved project
// root, and a home directory into the runtime AppConfig the session
// controller is constructed with.
func RuntimeConfigFromFile(cfg ConfigFile, projectRoot, homeDir string) (*AppConfig, error) {
	cleanHome := strings.TrimSpace(homeDir)
	if cleanHome == "" {
		return nil, fmt.Errorf("home directory is empty: %w", ErrStartup)
	}

	repo := strings.TrimSpace(cfg.Upstream.Repo)
	if repo == "" {
		return nil, fmt.Errorf("upstream.repo must not be empty: %w", ErrUsage)
	}

	freshness := cfg.Upstream.FreshnessHours
	if freshness <= 0 {
		freshness = 12
	}

	retain := cfg.Cache.Retain
	if retain <= 0 {
		retain = 5
	}

	return &AppConfig{
		ProjectRoot:       projectRoot,
		UpstreamRepo:      repo,
		FreshnessWindow:   time.Duration(freshness) * time.Hour,
		SnapshotRetain:    retain,
		UseColor:          strings.EqualFold(cfg.UI.Color, "always"),
		NotifyOnReload:    cfg.Notifications.Enabled,
		NotificationSound: cfg.Notifications.Sound,
	}, nil
}

// ExpandHomeDir expands a leading "~", "$HOME", or "${HOME}" in path using
// homeDir, as the teacher's config loader does for its own path settings.
func ExpandHomeDir(path, homeDir string) string {
	return expandHomeDir(path, homeDir)
}

func expandHomeDir(path, homeDir string) string {
	clean := strings.TrimSpace(path)
	if clean == "" {
		return clean
	}
	trimmedHome := strings.TrimRight(homeDir, "/")
	switch {
	case clean == "~":
		return homeDir
	case strings.HasPrefix(clean, "~/"):
		return trimmedHome + clean[1:]
	case clean == "$HOME":
		return homeDir
	case strings.HasPrefix(clean, "$HOME/"):
		return trimmedHome + clean[len("$HOME"):]
	case clean == "${HOME}":
		return homeDir
	case strings.HasPrefix(clean, "${HOME}/"):
		return trimmedHome + clean[len("${HOME}"):]
	default:
		return clean
	}
}
