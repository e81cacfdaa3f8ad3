package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

// InstanceGuard holds the single-instance pidfile lock.
type InstanceGuard struct {
	path string
}

// AcquireSingleInstance writes a pidfile under the user config dir. A pidfile
// left by a dead process is treated as stale and replaced.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve user config dir: %w", err)
	}
	lockDir := filepath.Join(configDir, appName)
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	lockPath := filepath.Join(lockDir, appName+".pid")

	if pid, ok := readPid(lockPath); ok {
		if pidAlive(pid) {
			return nil, ErrAlreadyRunning
		}
		// Stale lock from a crashed run.
		_ = os.Remove(lockPath)
	}

	file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, ErrAlreadyRunning
		}
		return nil, fmt.Errorf("create pidfile: %w", err)
	}
	defer file.Close()

	if _, err := fmt.Fprintf(file, "%d\n", os.Getpid()); err != nil {
		_ = os.Remove(lockPath)
		return nil, fmt.Errorf("write pidfile: %w", err)
	}

	return &InstanceGuard{path: lockPath}, nil
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.path == "" {
		return nil
	}
	return os.Remove(guard.path)
}

// Path returns the pidfile location.
func (guard *InstanceGuard) Path() string {
	if guard == nil {
		return ""
	}
	return guard.path
}

func readPid(path string) (int, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}
