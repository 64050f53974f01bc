package notification

import (
	"log/slog"
	"os"
)

// Adapter implements NotificationPort, sent by Session.notifyReloadComplete
// after a reload finishes with notifications enabled in config.
type Adapter struct {
	logger *slog.Logger
}

// New creates a new notification adapter.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{logger: logger}
}

// suppressed reports whether desktop notifications should be skipped
// outright, mirroring cmd/app's NO_COLOR-style environment opt-out for
// terminal color: a CI runner has no desktop session to pop a notification
// into, so attempting one there is noise at best.
func suppressed() bool {
	return os.Getenv("CI") != ""
}
