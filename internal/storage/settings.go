package storage

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"pomodoro/internal/core/model"
)

// yamlSettings uses the same field names as the JSON settings of earlier releases.
type yamlSettings struct {
	Pomodoro      int    `yaml:"pomodoro"`
	ShortBreak    int    `yaml:"shortBreak"`
	LongBreak     int    `yaml:"longBreak"`
	Theme         string `yaml:"theme"`
	SoundEnabled  *bool  `yaml:"soundEnabled,omitempty"`
	IdleStop      bool   `yaml:"idleStop,omitempty"`
	LaunchAtLogin bool   `yaml:"launchAtLogin,omitempty"`
}

// LoadSettings reads user settings from store.
// If nothing is stored the defaults are returned. If the stored value cannot be read the
// defaults are returned together with the error.
func LoadSettings(store Store) (model.Settings, error) {
	settings := model.DefaultSettings()

	rawData, err := store.Get(KeySettings)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user settings to store.
func SaveSettings(store Store, settings model.Settings) error {
	soundEnabled := settings.SoundEnabled
	fileData := yamlSettings{
		Pomodoro:      settings.Pomodoro,
		ShortBreak:    settings.ShortBreak,
		LongBreak:     settings.LongBreak,
		Theme:         string(settings.Theme),
		SoundEnabled:  &soundEnabled,
		IdleStop:      settings.IdleStopEnabled,
		LaunchAtLogin: settings.LaunchAtLogin,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := store.Set(KeySettings, serialized); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// MarshalSettings renders settings the way they are stored.
func MarshalSettings(settings model.Settings) ([]byte, error) {
	mem := NewMemoryStore()
	if err := SaveSettings(mem, settings); err != nil {
		return nil, err
	}
	return mem.Get(KeySettings)
}

func applyYamlSettings(settings *model.Settings, fileData yamlSettings) {
	if model.ValidMinutes(fileData.Pomodoro) {
		settings.Pomodoro = fileData.Pomodoro
	}
	if model.ValidMinutes(fileData.ShortBreak) {
		settings.ShortBreak = fileData.ShortBreak
	}
	if model.ValidMinutes(fileData.LongBreak) {
		settings.LongBreak = fileData.LongBreak
	}

	switch model.Theme(fileData.Theme) {
	case model.ThemeLight, model.ThemeDark:
		settings.Theme = model.Theme(fileData.Theme)
	}

	if fileData.SoundEnabled != nil {
		settings.SoundEnabled = *fileData.SoundEnabled
	}
	settings.IdleStopEnabled = fileData.IdleStop
	settings.LaunchAtLogin = fileData.LaunchAtLogin
}
