//go:build windows

package lock

import "golang.org/x/sys/windows"

// isProcessRunning reports whether pid identifies a live process. Windows has
// no signal-0 probe equivalent to POSIX kill(pid, 0), so liveness is read
// back from the process's exit code through the Win32 API instead.
func (a *Adapter) isProcessRunning(pid int) bool {
	if pid <= 0 {
		return false
	}

	handle, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, uint32(pid))
	if err != nil {
		return false
	}
	defer windows.CloseHandle(handle)

	var exitCode uint32
	if err := windows.GetExitCodeProcess(handle, &exitCode); err != nil {
		return false
	}
	return exitCode == windows.STILL_ACTIVE
}
