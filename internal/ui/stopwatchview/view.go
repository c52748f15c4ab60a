// Package stopwatchview renders the stopwatch tab.
package stopwatchview

import (
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/core/stopwatch"
	"pomodoro/internal/ui/format"
	"pomodoro/internal/ui/hint"
)

const (
	displayTextSize = 48
	lapCircleSize   = 64
	// visibleLaps is how many of the newest laps get a circle.
	visibleLaps = 3
)

// Controller is the subset of the stopwatch engine the view drives.
type Controller interface {
	Start()
	Stop()
	Reset()
	Lap() bool
	Snapshot() stopwatch.Snapshot
}

// View is the stopwatch tab. All methods must run on the fyne UI goroutine.
type View struct {
	engine Controller

	display   *canvas.Text
	lapsTitle *widget.Label
	lapRow    *fyne.Container
	lapCells  []lapCell
	previous  *widget.Label
	bar       *hint.Bar
	reset     *hint.Button
	startStop *hint.Button
	lap       *hint.Button

	running bool
	content fyne.CanvasObject
}

type lapCell struct {
	root  *fyne.Container
	index *canvas.Text
	value *canvas.Text
}

// New builds the view around engine.
func New(engine Controller) *View {
	view := &View{engine: engine, bar: hint.NewBar()}

	title := widget.NewLabelWithStyle("StopWatch", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	view.display = canvas.NewText(format.Clock(0), theme.Color(theme.ColorNameForeground))
	view.display.TextSize = displayTextSize
	view.display.TextStyle = fyne.TextStyle{Monospace: true}
	view.display.Alignment = fyne.TextAlignCenter

	view.lapsTitle = widget.NewLabelWithStyle("Laps", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	view.lapRow = container.NewHBox(layout.NewSpacer())
	for i := range visibleLaps {
		cell := newLapCell(i + 1)
		view.lapCells = append(view.lapCells, cell)
		view.lapRow.Add(cell.root)
	}
	view.lapRow.Add(layout.NewSpacer())

	view.previous = widget.NewLabel("")
	view.previous.Alignment = fyne.TextAlignCenter
	view.previous.Importance = widget.LowImportance

	view.reset = hint.NewIconButton(theme.MediaReplayIcon(), view.bar, func() string {
		return "Reset stopwatch"
	}, func() {
		view.engine.Reset()
		view.Sync()
	})
	view.startStop = hint.NewButton("Start", view.bar, func() string {
		if view.running {
			return "Stop the stopwatch"
		}
		return "Start the stopwatch"
	}, view.toggle)
	view.startStop.Importance = widget.HighImportance
	view.lap = hint.NewIconButton(theme.HistoryIcon(), view.bar, func() string {
		return "Record lap"
	}, func() {
		view.engine.Lap()
		view.Sync()
	})
	controls := container.NewHBox(layout.NewSpacer(), view.reset, view.startStop, view.lap, layout.NewSpacer())

	view.content = container.NewVBox(
		title,
		layout.NewSpacer(),
		view.display,
		view.lapsTitle,
		view.lapRow,
		view.previous,
		layout.NewSpacer(),
		view.bar,
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
func (view *View) Render(snapshot stopwatch.Snapshot) {
	view.running = snapshot.Running

	view.display.Text = format.Clock(snapshot.Elapsed)
	view.display.Refresh()

	laps := snapshot.Laps[:min(len(snapshot.Laps), visibleLaps)]
	if len(laps) == 0 {
		view.lapsTitle.Hide()
		view.lapRow.Hide()
	} else {
		view.lapsTitle.Show()
		view.lapRow.Show()
	}
	for i, cell := range view.lapCells {
		if i >= len(laps) {
			cell.root.Hide()
			continue
		}
		cell.value.Text = format.Clock(laps[i])
		cell.value.Refresh()
		cell.root.Show()
	}

	view.previous.SetText(previousLine(snapshot.History))

	if snapshot.Running {
		view.startStop.SetText("Stop")
		view.lap.Enable()
	} else {
		view.startStop.SetText("Start")
		view.lap.Disable()
	}
}

func (view *View) toggle() {
	if view.engine.Snapshot().Running {
		view.engine.Stop()
	} else {
		view.engine.Start()
	}
	view.Sync()
}

func newLapCell(position int) lapCell {
	circle := canvas.NewCircle(theme.Color(theme.ColorNameInputBackground))
	index := canvas.NewText(strconv.Itoa(position), theme.Color(theme.ColorNamePlaceHolder))
	index.Alignment = fyne.TextAlignCenter
	index.TextSize = theme.CaptionTextSize()
	value := canvas.NewText(format.Clock(0), theme.Color(theme.ColorNameForeground))
	value.Alignment = fyne.TextAlignCenter
	value.TextStyle = fyne.TextStyle{Bold: true}

	labels := container.NewVBox(layout.NewSpacer(), index, value, layout.NewSpacer())
	root := container.NewGridWrap(fyne.NewSquareSize(lapCircleSize), container.NewStack(circle, labels))
	return lapCell{root: root, index: index, value: value}
}

func previousLine(values []int) string {
	if len(values) == 0 {
		return ""
	}
	parts := make([]string, len(values))
	for i, value := range values {
		parts[i] = format.Clock(value)
	}
	return "Previous: " + strings.Join(parts, "  ")
}
