package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownMode indicates a mode name that does not map to a TimerMode.
var ErrUnknownMode = errors.New("unknown timer mode")

// Mode identifies which countdown duration is active.
type Mode string

const (
	ModeFocus      Mode = "pomodoro"
	ModeShortBreak Mode = "shortBreak"
	ModeLongBreak  Mode = "longBreak"
)

// Modes lists every mode in display order.
var Modes = []Mode{ModeFocus, ModeShortBreak, ModeLongBreak}

// Theme selects the UI colour variant.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Duration bounds enforced by the settings dialog. The engine does not check them.
const (
	MinMinutes = 1
	MaxMinutes = 60
)

// Settings holds the user-editable timer configuration.
type Settings struct {
	Pomodoro     int
	ShortBreak   int
	LongBreak    int
	Theme        Theme
	SoundEnabled bool

	IdleStopEnabled bool
	LaunchAtLogin   bool
}

// DefaultSettings returns the settings used when nothing is stored.
func DefaultSettings() Settings {
	return Settings{
		Pomodoro:     25,
		ShortBreak:   5,
		LongBreak:    15,
		Theme:        ThemeDark,
		SoundEnabled: true,
	}
}

// Minutes returns the configured minutes for mode.
// It panics on a mode outside the enumeration.
func (settings Settings) Minutes(mode Mode) int {
	switch mode {
	case ModeFocus:
		return settings.Pomodoro
	case ModeShortBreak:
		return settings.ShortBreak
	case ModeLongBreak:
		return settings.LongBreak
	default:
		panic(fmt.Sprintf("model: %v: %q", ErrUnknownMode, string(mode)))
	}
}

// WithMinutes returns a copy of settings with the duration for mode replaced.
func (settings Settings) WithMinutes(mode Mode, minutes int) Settings {
	switch mode {
	case ModeFocus:
		settings.Pomodoro = minutes
	case ModeShortBreak:
		settings.ShortBreak = minutes
	case ModeLongBreak:
		settings.LongBreak = minutes
	default:
		panic(fmt.Sprintf("model: %v: %q", ErrUnknownMode, string(mode)))
	}
	return settings
}

// DurationOf returns the countdown length for mode.
func DurationOf(mode Mode, settings Settings) time.Duration {
	return time.Duration(settings.Minutes(mode)) * time.Minute
}

// SecondsOf returns the countdown length for mode in whole seconds.
func SecondsOf(mode Mode, settings Settings) int {
	return settings.Minutes(mode) * 60
}

// ParseMode converts a stored or user-supplied name into a Mode.
func ParseMode(value string) (Mode, error) {
	for _, mode := range Modes {
		if string(mode) == value {
			return mode, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, value)
}

// Label returns the human readable name shown on mode buttons.
func (mode Mode) Label() string {
	switch mode {
	case ModeFocus:
		return "Pomodoro"
	case ModeShortBreak:
		return "Short Break"
	case ModeLongBreak:
		return "Long Break"
	default:
		return string(mode)
	}
}

// Description returns the tooltip text for mode.
func (mode Mode) Description() string {
	switch mode {
	case ModeFocus:
		return "Focus session"
	case ModeShortBreak:
		return "Short break"
	case ModeLongBreak:
		return "Long break"
	default:
		return string(mode)
	}
}

// ValidMinutes reports whether minutes is inside the dialog bounds.
func ValidMinutes(minutes int) bool {
	return minutes >= MinMinutes && minutes <= MaxMinutes
}

// Validate checks that every duration is inside the dialog bounds.
func (settings Settings) Validate() error {
	for _, mode := range Modes {
		if minutes := settings.Minutes(mode); !ValidMinutes(minutes) {
			return fmt.Errorf("%s duration %d must be between %d and %d minutes", mode, minutes, MinMinutes, MaxMinutes)
		}
	}
	if settings.Theme != ThemeLight && settings.Theme != ThemeDark {
		return fmt.Errorf("invalid theme %q", settings.Theme)
	}
	return nil
}
