package preferences

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
)

func TestWindowSavesValidSettings(t *testing.T) {
	app := test.NewTempApp(t)

	var saved []model.Settings
	prefs := New(app, model.DefaultSettings(), func(settings model.Settings) {
		saved = append(saved, settings)
	})

	prefs.pomodoro.SetText("45")
	prefs.theme.SetSelected("Light")
	prefs.handleSave()

	require.Len(t, saved, 1)
	assert.Equal(t, 45, saved[0].Pomodoro)
	assert.Equal(t, model.ThemeLight, saved[0].Theme)
	assert.False(t, prefs.errorLabel.Visible())
}

func TestWindowRejectsInvalidMinutes(t *testing.T) {
	app := test.NewTempApp(t)

	saved := 0
	prefs := New(app, model.DefaultSettings(), func(model.Settings) { saved++ })

	prefs.shortBreak.SetText("90")
	prefs.handleSave()

	assert.Equal(t, 0, saved)
	assert.True(t, prefs.errorLabel.Visible())
	assert.Contains(t, prefs.errorLabel.Text, "Short Break")

	prefs.UpdateSettings(model.DefaultSettings())
	assert.Equal(t, "5", prefs.shortBreak.Text)
	assert.False(t, prefs.errorLabel.Visible())
}
