package preferences

import (
	"fmt"
	"strconv"
	"strings"

	"pomodoro/internal/core/model"
)

// Form holds the raw values of the preferences window.
type Form struct {
	Pomodoro      string
	ShortBreak    string
	LongBreak     string
	Theme         string
	SoundEnabled  bool
	IdleStop      bool
	LaunchAtLogin bool
}

// FormFrom renders settings into form values.
func FormFrom(settings model.Settings) Form {
	return Form{
		Pomodoro:      strconv.Itoa(settings.Pomodoro),
		ShortBreak:    strconv.Itoa(settings.ShortBreak),
		LongBreak:     strconv.Itoa(settings.LongBreak),
		Theme:         themeLabel(settings.Theme),
		SoundEnabled:  settings.SoundEnabled,
		IdleStop:      settings.IdleStopEnabled,
		LaunchAtLogin: settings.LaunchAtLogin,
	}
}

// Apply validates the form and returns base updated with its values.
// Durations must be whole minutes between 1 and 60.
func (form Form) Apply(base model.Settings) (model.Settings, error) {
	settings := base

	fields := []struct {
		name  string
		value string
		mode  model.Mode
	}{
		{"Pomodoro", form.Pomodoro, model.ModeFocus},
		{"Short Break", form.ShortBreak, model.ModeShortBreak},
		{"Long Break", form.LongBreak, model.ModeLongBreak},
	}
	for _, field := range fields {
		minutes, err := parseMinutes(field.value)
		if err != nil {
			return base, fmt.Errorf("%s: %w", field.name, err)
		}
		settings = settings.WithMinutes(field.mode, minutes)
	}

	settings.Theme = themeFromLabel(form.Theme)
	settings.SoundEnabled = form.SoundEnabled
	settings.IdleStopEnabled = form.IdleStop
	settings.LaunchAtLogin = form.LaunchAtLogin
	return settings, nil
}

func parseMinutes(value string) (int, error) {
	minutes, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%q is not a number of minutes", value)
	}
	if !model.ValidMinutes(minutes) {
		return 0, fmt.Errorf("must be between %d and %d minutes", model.MinMinutes, model.MaxMinutes)
	}
	return minutes, nil
}

var themeLabels = []string{"Dark", "Light"}

func themeLabel(theme model.Theme) string {
	if theme == model.ThemeLight {
		return "Light"
	}
	return "Dark"
}

func themeFromLabel(label string) model.Theme {
	if label == "Light" {
		return model.ThemeLight
	}
	return model.ThemeDark
}
