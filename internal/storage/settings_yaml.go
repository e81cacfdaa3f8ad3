package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"stillness/internal/core/model"
	"stillness/internal/ui/preferences"
	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	SessionMinutes int  `yaml:"session_minutes"`
	AutoReset      bool `yaml:"auto_reset"`
	ChimeEnabled   bool `yaml:"chime_enabled"`
	BreathingGuide bool `yaml:"breathing_guide"`
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return settings, err
	}

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		SessionMinutes: model.ClampMinutes(settings.SessionMinutes),
		AutoReset:      settings.AutoReset,
		ChimeEnabled:   settings.ChimeEnabled,
		BreathingGuide: settings.BreathingGuide,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func resolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.SessionMinutes > 0 {
		settings.SessionMinutes = model.ClampMinutes(fileData.SessionMinutes)
	}
	settings.AutoReset = fileData.AutoReset
	settings.ChimeEnabled = fileData.ChimeEnabled
	settings.BreathingGuide = fileData.BreathingGuide
}
