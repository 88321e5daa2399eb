package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pomodoro/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

// Durations are stored as minutes; fractions keep second-level overrides
// such as "-work 30s" (0.5) intact.
type yamlSettings struct {
	WorkMinutes      float64  `yaml:"work_minutes"`
	BreakMinutes     float64  `yaml:"break_minutes"`
	ChimeEnabled     *bool    `yaml:"chime_enabled"`
	ChimeVolume      *float64 `yaml:"chime_volume"`
	ChimeFile        string   `yaml:"chime_file,omitempty"`
	IdlePauseEnabled bool     `yaml:"idle_pause_enabled"`
	IdlePauseMinutes float64  `yaml:"idle_pause_minutes"`
	BreakOverlay     bool     `yaml:"break_overlay"`
	Autostart        bool     `yaml:"autostart"`
}

// ResolveConfigPath returns the settings file location for appName.
func ResolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettings reads user preferences from YAML.
// If the file does not exist, default settings are returned.
func LoadSettings(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

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
func SaveSettings(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	chimeEnabled := settings.ChimeEnabled
	chimeVolume := settings.ChimeVolume
	fileData := yamlSettings{
		WorkMinutes:      settings.WorkDuration.Minutes(),
		BreakMinutes:     settings.BreakDuration.Minutes(),
		ChimeEnabled:     &chimeEnabled,
		ChimeVolume:      &chimeVolume,
		ChimeFile:        settings.ChimeFile,
		IdlePauseEnabled: settings.IdlePauseEnabled,
		IdlePauseMinutes: settings.IdlePauseAfter.Minutes(),
		BreakOverlay:     settings.BreakOverlay,
		Autostart:        settings.Autostart,
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

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if work := minutesToDuration(fileData.WorkMinutes); work > 0 {
		settings.WorkDuration = work
	}
	if brk := minutesToDuration(fileData.BreakMinutes); brk > 0 {
		settings.BreakDuration = brk
	}
	if idle := minutesToDuration(fileData.IdlePauseMinutes); idle > 0 {
		settings.IdlePauseAfter = idle
	}
	if fileData.ChimeEnabled != nil {
		settings.ChimeEnabled = *fileData.ChimeEnabled
	}
	if volume := fileData.ChimeVolume; volume != nil && *volume >= 0 && *volume <= 1 {
		settings.ChimeVolume = *volume
	}

	settings.ChimeFile = fileData.ChimeFile
	settings.IdlePauseEnabled = fileData.IdlePauseEnabled
	settings.BreakOverlay = fileData.BreakOverlay
	settings.Autostart = fileData.Autostart
}

// minutesToDuration rounds to whole seconds; non-positive values yield 0.
func minutesToDuration(minutes float64) time.Duration {
	if minutes <= 0 {
		return 0
	}
	return time.Duration(minutes * float64(time.Minute)).Round(time.Second)
}
