package preferences

import (
	"stillness/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	SessionMinutes int
	AutoReset      bool
	ChimeEnabled   bool
	BreathingGuide bool
}

// DefaultSettings returns default settings for Stillness.
func DefaultSettings() Settings {
	return Settings{
		SessionMinutes: model.DefaultSessionConfig().InitialMinutes,
		AutoReset:      false,
		ChimeEnabled:   true,
		BreathingGuide: true,
	}
}

// SessionConfig converts settings to an engine SessionConfig.
func (settings Settings) SessionConfig() model.SessionConfig {
	config := model.DefaultSessionConfig()
	config.InitialMinutes = model.ClampMinutes(settings.SessionMinutes)
	config.AutoReset = settings.AutoReset
	return config
}
