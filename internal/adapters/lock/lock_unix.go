//go:build !windows

package lock

import (
	"fmt"
	"os"
	"runtime"
	"syscall"
)

// isProcessRunning reports whether pid identifies a live process, probing
// /proc where it exists and otherwise falling back to a signal-0 send. This
// CLI's lock is held for a single Reload or Save call, not across a reboot,
// so the darwin/linux-only process-start-time lookup the teacher's daemon
// lock used to defend against PID reuse has no job to do here.
func (a *Adapter) isProcessRunning(pid int) bool {
	if pid <= 0 {
		return false
	}

	if runtime.GOOS == osLinux || runtime.GOOS == osDarwin {
		if _, err := os.Stat(fmt.Sprintf("/proc/%d", pid)); err == nil {
			return true
		}
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}
