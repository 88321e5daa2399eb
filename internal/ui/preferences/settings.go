package preferences

import (
	"time"

	"pomodoro/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	WorkDuration  time.Duration
	BreakDuration time.Duration

	ChimeEnabled bool
	ChimeVolume  float64
	ChimeFile    string

	IdlePauseEnabled bool
	IdlePauseAfter   time.Duration

	BreakOverlay bool
	Autostart    bool
}

// DefaultSettings returns default settings for the timer.
func DefaultSettings() Settings {
	return Settings{
		WorkDuration:     model.DefaultWorkDuration,
		BreakDuration:    model.DefaultBreakDuration,
		ChimeEnabled:     true,
		ChimeVolume:      1,
		IdlePauseEnabled: false,
		IdlePauseAfter:   5 * time.Minute,
		BreakOverlay:     false,
		Autostart:        false,
	}
}

// TimeKeeperConfig converts settings to TimeKeeperConfig.
func (settings Settings) TimeKeeperConfig() model.TimeKeeperConfig {
	return model.TimeKeeperConfig{
		Clock: model.ClockConfig{
			Work:  settings.WorkDuration,
			Break: settings.BreakDuration,
		},
		IdlePauseEnabled:  settings.IdlePauseEnabled,
		IdlePauseAfter:    settings.IdlePauseAfter,
		IdleCheckInterval: 5 * time.Second,
	}
}
