package app

import (
	"log/slog"

	"github.com/astrosteveo/awesome-copilot-tui/internal/adapters/config"
	"github.com/astrosteveo/awesome-copilot-tui/internal/adapters/filesystem"
	"github.com/astrosteveo/awesome-copilot-tui/internal/adapters/httpfetch"
	"github.com/astrosteveo/awesome-copilot-tui/internal/adapters/lock"
	"github.com/astrosteveo/awesome-copilot-tui/internal/adapters/notification"
	"github.com/astrosteveo/awesome-copilot-tui/internal/adapters/process"
	"github.com/astrosteveo/awesome-copilot-tui/internal/adapters/schema"
	"github.com/astrosteveo/awesome-copilot-tui/internal/usecase"
)

// NewDefaultDependencies creates dependencies with real adapters where available.
func NewDefaultDependencies(logger *slog.Logger) *usecase.Dependencies {
	if logger == nil {
		panic("default dependencies require logger")
	}
	fsAdapter := filesystem.New(logger)
	configAdapter := config.New(logger)
	upstreamAdapter := httpfetch.New(logger)
	lockAdapter := lock.New(logger)
	notificationAdapter := notification.New(logger)
	processAdapter := process.New(logger)
	schemaAdapter := schema.New(logger)

	return &usecase.Dependencies{
		FileSystem:   fsAdapter,
		Upstream:     upstreamAdapter,
		Lock:         lockAdapter,
		Process:      processAdapter,
		Config:       configAdapter,
		Schema:       schemaAdapter,
		Notification: notificationAdapter,
	}
}
