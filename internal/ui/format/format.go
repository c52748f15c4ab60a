// Package format renders seconds for the timer displays.
package format

import (
	"fmt"

	"pomodoro/internal/core/stepping"
)

// Clock renders seconds as mm:ss. Minutes are not wrapped, so 3600 is "60:00".
func Clock(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// HistoryEntry renders a recorded value as mm:ss.xx, where xx is seconds mod 100.
func HistoryEntry(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%s.%02d", Clock(seconds), seconds%100)
}

// AdjustHint describes the step of the -/+ buttons for the given remaining time.
func AdjustHint(direction stepping.Direction, remaining int) string {
	verb := "Increase"
	if direction == stepping.Decrease {
		verb = "Decrease"
	}
	minutes := stepping.StepMinutes(remaining)
	unit := "minute"
	if minutes != 1 {
		unit = "minutes"
	}
	return fmt.Sprintf("%s time by %d %s", verb, minutes, unit)
}

// ModeHint is the hover text of a mode button.
func ModeHint(description string, minutes int) string {
	return fmt.Sprintf("%s (%d minutes)", description, minutes)
}
