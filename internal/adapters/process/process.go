package process

import (
	"log/slog"
	"os"
)

// Adapter implements ProcessPort, reporting this host process's identity so
// Session.withLock can stamp a held guard lock with enough to tell a live
// holder on this host from a stale one left by a different host or a dead PID.
type Adapter struct {
	logger *slog.Logger
}

// New creates a new process adapter.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		panic("process adapter requires logger")
	}
	return &Adapter{logger: logger}
}

// GetPID returns the current process PID.
func (a *Adapter) GetPID() int {
	return os.Getpid()
}

// Hostname returns the current host's name, or "" if it cannot be resolved.
func (a *Adapter) Hostname() string {
	host, err := os.Hostname()
	if err != nil {
		a.logger.Debug("resolve hostname failed", "error", err)
		return ""
	}
	return host
}
