//go:build windows

package platform

import "os"

// pidAlive reports whether a process with the given pid exists. On Windows
// FindProcess opens a handle, so it fails for dead pids.
func pidAlive(pid int) bool {
	_, err := os.FindProcess(pid)
	return err == nil
}
