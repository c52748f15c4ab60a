// Package timerview renders the Pomodoro countdown.
package timerview

import (
	"context"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/core/countdown"
	"pomodoro/internal/core/history"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/stepping"
	"pomodoro/internal/ui/animation"
	"pomodoro/internal/ui/apptheme"
	"pomodoro/internal/ui/format"
	"pomodoro/internal/ui/hint"
)

const clockTextSize = 48

// Controller is the subset of the countdown engine the view drives.
type Controller interface {
	Start()
	Stop()
	Reset()
	ChangeMode(mode model.Mode)
	Adjust(direction stepping.Direction)
	ClearHistory()
	Snapshot() countdown.Snapshot
	Settings() model.Settings
}

// View is the countdown tab. All methods must run on the fyne UI goroutine.
type View struct {
	engine     Controller
	onSettings func()

	modes     map[model.Mode]*hint.Button
	clock     *canvas.Text
	minus     *hint.Button
	plus      *hint.Button
	progress  *widget.ProgressBar
	bar       *hint.Bar
	history   []*canvas.Text
	clear     *hint.Button
	reset     *hint.Button
	startStop *hint.Button
	settings  *hint.Button

	flash    *animation.Engine
	flashing bool
	last     countdown.Snapshot
	content  fyne.CanvasObject
}

// New builds the view around engine. onSettings opens the preferences window.
func New(engine Controller, onSettings func()) *View {
	view := &View{
		engine:     engine,
		onSettings: onSettings,
		modes:      make(map[model.Mode]*hint.Button, len(model.Modes)),
		bar:        hint.NewBar(),
	}

	modeRow := container.NewHBox(layout.NewSpacer())
	for _, mode := range model.Modes {
		button := hint.NewButton(mode.Label(), view.bar, func() string {
			return format.ModeHint(mode.Description(), view.engine.Settings().Minutes(mode))
		}, func() {
			view.engine.ChangeMode(mode)
			view.Sync()
		})
		view.modes[mode] = button
		modeRow.Add(button)
	}
	modeRow.Add(layout.NewSpacer())

	view.clock = canvas.NewText(format.Clock(0), theme.Color(theme.ColorNameForeground))
	view.clock.TextSize = clockTextSize
	view.clock.TextStyle = fyne.TextStyle{Monospace: true}
	view.clock.Alignment = fyne.TextAlignCenter

	view.minus = view.adjustButton("-", stepping.Decrease)
	view.plus = view.adjustButton("+", stepping.Increase)
	clockRow := container.NewHBox(layout.NewSpacer(), view.minus, view.clock, view.plus, layout.NewSpacer())

	view.progress = widget.NewProgressBar()
	view.progress.TextFormatter = func() string { return "" }

	historyColumn := container.NewVBox()
	view.history = make([]*canvas.Text, history.Capacity)
	for i := range view.history {
		entry := canvas.NewText(format.HistoryEntry(0), theme.Color(theme.ColorNameDisabled))
		entry.Alignment = fyne.TextAlignCenter
		entry.TextSize = theme.TextSubHeadingSize()
		view.history[i] = entry
		historyColumn.Add(entry)
	}
	view.clear = hint.NewIconButton(theme.HistoryIcon(), view.bar, func() string {
		return "Clear timer history"
	}, func() {
		view.engine.ClearHistory()
		view.Sync()
	})
	view.clear.Importance = widget.LowImportance
	historyRow := container.NewHBox(layout.NewSpacer(), historyColumn, view.clear, layout.NewSpacer())

	view.reset = hint.NewIconButton(theme.MediaReplayIcon(), view.bar, func() string {
		return "Reset timer"
	}, func() {
		view.engine.Reset()
		view.Sync()
	})
	view.startStop = hint.NewButton("Start", view.bar, func() string {
		if view.last.Running {
			return "Stop the timer"
		}
		return "Start the timer"
	}, view.toggle)
	view.startStop.Importance = widget.HighImportance
	view.settings = hint.NewIconButton(theme.SettingsIcon(), view.bar, func() string {
		return "Settings"
	}, func() {
		if view.onSettings != nil {
			view.onSettings()
		}
	})
	controls := container.NewHBox(layout.NewSpacer(), view.reset, view.startStop, view.settings, layout.NewSpacer())

	view.flash = animation.New(animation.DefaultConfig(), func(on bool) {
		fyne.Do(func() { view.setFlashing(on) })
	})

	view.content = container.NewVBox(
		modeRow,
		layout.NewSpacer(),
		clockRow,
		view.progress,
		view.bar,
		historyRow,
		layout.NewSpacer(),
		controls,
	)
	view.Sync()
	return view
}

// Content returns the root canvas object.
func (view *View) Content() fyne.CanvasObject {
	return view.content
}

// Sync redraws the view from the engine.
func (view *View) Sync() {
	view.Render(view.engine.Snapshot())
}

// Render draws snapshot.
func (view *View) Render(snapshot countdown.Snapshot) {
	view.last = snapshot

	for mode, button := range view.modes {
		if mode == snapshot.Mode {
			button.Importance = widget.HighImportance
		} else {
			button.Importance = widget.LowImportance
		}
		button.Refresh()
	}

	view.clock.Text = format.Clock(snapshot.Remaining)
	view.clock.Color = view.clockColor()
	view.clock.Refresh()
	view.progress.SetValue(snapshot.Progress)

	for i, entry := range view.history {
		value := 0
		if i < len(snapshot.History) {
			value = snapshot.History[i]
		}
		entry.Text = format.HistoryEntry(value)
		entry.Color = historyColor(i)
		entry.Refresh()
	}

	if snapshot.Running {
		view.startStop.SetText("Stop")
	} else {
		view.startStop.SetText("Start")
	}
	if snapshot.Remaining == 0 {
		view.startStop.Disable()
	} else {
		view.startStop.Enable()
	}
}

// Flash highlights the clock briefly. Used when a countdown completes.
func (view *View) Flash() {
	view.flash.Flash(context.Background())
}

// Close stops any running animation.
func (view *View) Close() {
	view.flash.Stop()
}

func (view *View) toggle() {
	if view.engine.Snapshot().Running {
		view.engine.Stop()
	} else {
		view.flash.Stop()
		view.engine.Start()
	}
	view.Sync()
}

func (view *View) adjustButton(label string, direction stepping.Direction) *hint.Button {
	button := hint.NewButton(label, view.bar, func() string {
		return format.AdjustHint(direction, view.last.Remaining)
	}, func() {
		view.engine.Adjust(direction)
		view.Sync()
	})
	button.Importance = widget.LowImportance
	return button
}

func (view *View) setFlashing(on bool) {
	view.flashing = on
	view.clock.Color = view.clockColor()
	view.clock.Refresh()
}

func (view *View) clockColor() color.Color {
	if view.flashing {
		return apptheme.Accent
	}
	return theme.Color(theme.ColorNameForeground)
}

func historyColor(index int) color.Color {
	if index == 0 {
		return theme.Color(theme.ColorNameSuccess)
	}
	return theme.Color(theme.ColorNameDisabled)
}
