package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stillness/internal/ui/preferences"
)

const testAppName = "stillness-test"

func useTempConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestLoadSettingsMissingFileReturnsDefaults(t *testing.T) {
	useTempConfigDir(t)

	settings, err := LoadSettings(testAppName)

	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	useTempConfigDir(t)

	saved := preferences.Settings{
		SessionMinutes: 45,
		AutoReset:      true,
		ChimeEnabled:   false,
		BreathingGuide: true,
	}
	require.NoError(t, SaveSettings(testAppName, saved))

	loaded, err := LoadSettings(testAppName)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestSaveClampsMinutes(t *testing.T) {
	useTempConfigDir(t)

	saved := preferences.DefaultSettings()
	saved.SessionMinutes = 5000
	require.NoError(t, SaveSettings(testAppName, saved))

	loaded, err := LoadSettings(testAppName)
	require.NoError(t, err)
	assert.Equal(t, 999, loaded.SessionMinutes)
}

func TestLoadClampsStoredMinutes(t *testing.T) {
	dir := useTempConfigDir(t)

	configDir := filepath.Join(dir, testAppName)
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	raw := []byte("session_minutes: 12000\nauto_reset: false\nchime_enabled: true\nbreathing_guide: false\n")
	require.NoError(t, os.WriteFile(filepath.Join(configDir, settingsFileName), raw, 0o644))

	loaded, err := LoadSettings(testAppName)
	require.NoError(t, err)
	assert.Equal(t, 999, loaded.SessionMinutes)
	assert.True(t, loaded.ChimeEnabled)
	assert.False(t, loaded.BreathingGuide)
}

func TestLoadInvalidYamlKeepsDefaults(t *testing.T) {
	dir := useTempConfigDir(t)

	configDir := filepath.Join(dir, testAppName)
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, settingsFileName), []byte("{not yaml"), 0o644))

	settings, err := LoadSettings(testAppName)
	assert.Error(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}
