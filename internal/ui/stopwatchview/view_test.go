package stopwatchview

import (
	"testing"

	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"pomodoro/internal/core/stopwatch"
	"pomodoro/internal/core/ticker"
)

func newTestView(t *testing.T) (*View, *stopwatch.Engine, *ticker.Manual) {
	t.Helper()
	test.NewTempApp(t)

	source := ticker.NewManual()
	engine := stopwatch.New(nil, stopwatch.Config{Source: source})
	t.Cleanup(engine.Close)
	return New(engine), engine, source
}

func visibleLapTexts(view *View) []string {
	var texts []string
	for _, cell := range view.lapCells {
		if cell.root.Visible() {
			texts = append(texts, cell.value.Text)
		}
	}
	return texts
}

func TestInitialState(t *testing.T) {
	view, _, _ := newTestView(t)

	assert.Equal(t, "00:00", view.display.Text)
	assert.Equal(t, "Start", view.startStop.Text)
	assert.True(t, view.lap.Disabled())
	assert.False(t, view.lapRow.Visible())
	assert.Empty(t, view.previous.Text)
}

func TestRunLapStopReset(t *testing.T) {
	view, engine, source := newTestView(t)

	test.Tap(view.startStop)
	assert.Equal(t, "Stop", view.startStop.Text)
	assert.False(t, view.lap.Disabled())

	source.FireN(65)
	test.Tap(view.lap)
	assert.Equal(t, "01:05", view.display.Text)
	assert.True(t, view.lapRow.Visible())
	assert.Equal(t, []string{"01:05"}, visibleLapTexts(view))

	for range 3 {
		source.Fire()
		test.Tap(view.lap)
	}
	assert.Equal(t, []string{"01:08", "01:07", "01:06"}, visibleLapTexts(view))
	assert.Len(t, engine.Snapshot().Laps, 4)

	test.Tap(view.startStop)
	assert.Equal(t, "Start", view.startStop.Text)
	assert.True(t, view.lap.Disabled())
	assert.Equal(t, "Previous: 01:08", view.previous.Text)

	test.Tap(view.reset)
	assert.Equal(t, "00:00", view.display.Text)
	assert.False(t, view.lapRow.Visible())
	assert.Empty(t, view.previous.Text)
}

func TestHints(t *testing.T) {
	view, _, _ := newTestView(t)

	view.startStop.MouseIn(&desktop.MouseEvent{})
	assert.Equal(t, "Start the stopwatch", view.bar.Text)
	view.lap.MouseIn(&desktop.MouseEvent{})
	assert.Equal(t, "Record lap", view.bar.Text)
	view.reset.MouseIn(&desktop.MouseEvent{})
	assert.Equal(t, "Reset stopwatch", view.bar.Text)
}

func TestPreviousLine(t *testing.T) {
	assert.Empty(t, previousLine(nil))
	assert.Equal(t, "Previous: 00:10  01:00", previousLine([]int{10, 60}))
}
