package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAppName = "stillness-lock-test"

func TestAcquireAndRelease(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	guard, err := AcquireSingleInstance(testAppName)
	require.NoError(t, err)
	require.NotNil(t, guard)
	assert.FileExists(t, guard.Path())

	_, err = AcquireSingleInstance(testAppName)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, guard.Release())
	assert.NoFileExists(t, guard.Path())

	second, err := AcquireSingleInstance(testAppName)
	require.NoError(t, err)
	require.NoError(t, second.Release())
}

func TestStalePidfileIsReplaced(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	lockDir := filepath.Join(dir, testAppName)
	require.NoError(t, os.MkdirAll(lockDir, 0o755))
	// A pid that cannot be a live process.
	stale := []byte(fmt.Sprintf("%d\n", 1<<30))
	require.NoError(t, os.WriteFile(filepath.Join(lockDir, testAppName+".pid"), stale, 0o644))

	guard, err := AcquireSingleInstance(testAppName)
	require.NoError(t, err)
	require.NoError(t, guard.Release())
}

func TestNilGuardRelease(t *testing.T) {
	var guard *InstanceGuard
	assert.NoError(t, guard.Release())
	assert.Empty(t, guard.Path())
}
