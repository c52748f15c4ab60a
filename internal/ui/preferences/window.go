// Package preferences implements the settings window.
package preferences

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/core/model"
)

// Window handles the preferences UI.
type Window struct {
	window   fyne.Window
	settings model.Settings
	onSave   func(model.Settings)

	pomodoro   *widget.Entry
	shortBreak *widget.Entry
	longBreak  *widget.Entry
	theme      *widget.Select
	sound      *widget.Check
	idleStop   *widget.Check
	launch     *widget.Check
	errorLabel *widget.Label
}

// New creates a preferences window. onSave receives validated settings.
func New(app fyne.App, settings model.Settings, onSave func(model.Settings)) *Window {
	window := app.NewWindow("Settings")

	prefs := &Window{
		window:     window,
		onSave:     onSave,
		pomodoro:   minutesEntry(),
		shortBreak: minutesEntry(),
		longBreak:  minutesEntry(),
		theme:      widget.NewSelect(themeLabels, nil),
		sound:      widget.NewCheck("Notify when a timer ends", nil),
		idleStop:   widget.NewCheck("Stop the timer when I'm away", nil),
		launch:     widget.NewCheck("Launch at login", nil),
		errorLabel: widget.NewLabel(""),
	}
	prefs.errorLabel.Importance = widget.DangerImportance
	prefs.errorLabel.Hide()

	times := container.NewGridWithColumns(3,
		labeled("Pomodoro", prefs.pomodoro),
		labeled("Short Break", prefs.shortBreak),
		labeled("Long Break", prefs.longBreak),
	)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Time (minutes)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		times,
		widget.NewSeparator(),
		container.NewBorder(nil, nil, widget.NewLabel("Theme"), nil, prefs.theme),
		prefs.sound,
		prefs.idleStop,
		prefs.launch,
		prefs.errorLabel,
	)

	applyButton := widget.NewButtonWithIcon("Apply", theme.ConfirmIcon(), prefs.handleSave)
	applyButton.Importance = widget.HighImportance
	cancelButton := widget.NewButton("Cancel", window.Hide)
	buttons := container.NewHBox(layout.NewSpacer(), cancelButton, applyButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(380, 320))
	window.SetCloseIntercept(window.Hide)

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings model.Settings) {
	prefs.settings = settings
	prefs.setForm(FormFrom(settings))
	prefs.errorLabel.Hide()
}

func (prefs *Window) handleSave() {
	settings, err := prefs.form().Apply(prefs.settings)
	if err != nil {
		prefs.errorLabel.SetText(err.Error())
		prefs.errorLabel.Show()
		return
	}
	prefs.errorLabel.Hide()

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func (prefs *Window) form() Form {
	return Form{
		Pomodoro:      prefs.pomodoro.Text,
		ShortBreak:    prefs.shortBreak.Text,
		LongBreak:     prefs.longBreak.Text,
		Theme:         prefs.theme.Selected,
		SoundEnabled:  prefs.sound.Checked,
		IdleStop:      prefs.idleStop.Checked,
		LaunchAtLogin: prefs.launch.Checked,
	}
}

func (prefs *Window) setForm(form Form) {
	prefs.pomodoro.SetText(form.Pomodoro)
	prefs.shortBreak.SetText(form.ShortBreak)
	prefs.longBreak.SetText(form.LongBreak)
	prefs.theme.SetSelected(form.Theme)
	prefs.sound.SetChecked(form.SoundEnabled)
	prefs.idleStop.SetChecked(form.IdleStop)
	prefs.launch.SetChecked(form.LaunchAtLogin)
}

func minutesEntry() *widget.Entry {
	entry := widget.NewEntry()
	entry.Validator = func(text string) error {
		_, err := parseMinutes(text)
		return err
	}
	return entry
}

func labeled(label string, entry *widget.Entry) fyne.CanvasObject {
	return container.NewVBox(widget.NewLabel(label), entry)
}
