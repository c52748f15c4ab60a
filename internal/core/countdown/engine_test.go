package countdown

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/stepping"
	"pomodoro/internal/core/ticker"
)

type fakeChime struct {
	plays int
	err   error
}

func (chime *fakeChime) Play() error {
	chime.plays++
	return chime.err
}

type fakeHistoryWriter struct {
	saved [][]int
}

func (writer *fakeHistoryWriter) SaveHistory(values []int) error {
	writer.saved = append(writer.saved, values)
	return nil
}

func newTestEngine(t *testing.T, settings model.Settings) (*Engine, *ticker.Manual, *fakeChime, *fakeHistoryWriter) {
	t.Helper()
	source := ticker.NewManual()
	chime := &fakeChime{}
	writer := &fakeHistoryWriter{}
	engine := New(settings, []int{0, 0, 0}, Config{
		Source:  source,
		Chime:   chime,
		History: writer,
	})
	t.Cleanup(engine.Close)
	return engine, source, chime, writer
}

func TestNew_StartsIdleInFocusMode(t *testing.T) {
	engine, source, _, _ := newTestEngine(t, model.DefaultSettings())

	snap := engine.Snapshot()
	assert.Equal(t, model.ModeFocus, snap.Mode)
	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, 1500, snap.Remaining)
	assert.Equal(t, 1500, snap.Total)
	assert.False(t, snap.Running)
	assert.Equal(t, []int{0, 0, 0}, snap.History)
	assert.Equal(t, 0, source.Pending())
}

func TestFullFocusSessionCompletesOnce(t *testing.T) {
	engine, source, chime, writer := newTestEngine(t, model.DefaultSettings())

	engine.Start()
	require.Equal(t, 1, source.Pending())

	previous := engine.Snapshot().Remaining
	for i := 0; i < 1500; i++ {
		source.Fire()
		current := engine.Snapshot().Remaining
		require.LessOrEqual(t, current, previous)
		require.GreaterOrEqual(t, current, 0)
		previous = current
	}

	snap := engine.Snapshot()
	assert.Equal(t, 0, snap.Remaining)
	assert.False(t, snap.Running)
	assert.Equal(t, StateCompleted, snap.State)
	assert.Equal(t, 1, chime.plays)
	assert.Equal(t, 0, source.Pending(), "registration is released on completion")
	assert.Empty(t, writer.saved, "completion does not record history")

	// Extra ticks after completion change nothing.
	engine.Tick()
	source.FireN(5)
	assert.Equal(t, 0, engine.Snapshot().Remaining)
	assert.Equal(t, 1, chime.plays)
}

func TestCompletionRespectsSoundSetting(t *testing.T) {
	settings := model.DefaultSettings()
	settings.SoundEnabled = false
	settings.ShortBreak = 1
	engine, source, chime, _ := newTestEngine(t, settings)

	engine.ChangeMode(model.ModeShortBreak)
	engine.Start()
	source.FireN(60)

	assert.Equal(t, 0, engine.Snapshot().Remaining)
	assert.Equal(t, 0, chime.plays)
}

func TestChimeFailureIsSwallowed(t *testing.T) {
	settings := model.DefaultSettings()
	settings.Pomodoro = 1
	engine, source, chime, _ := newTestEngine(t, settings)
	chime.err = errors.New("playback blocked")

	engine.Start()
	assert.NotPanics(t, func() { source.FireN(60) })
	assert.Equal(t, 1, chime.plays)
	assert.Equal(t, StateCompleted, engine.Snapshot().State)
}

func TestStartIsIgnoredAtZero(t *testing.T) {
	settings := model.DefaultSettings()
	settings.Pomodoro = 1
	engine, source, _, _ := newTestEngine(t, settings)

	engine.Start()
	source.FireN(60)
	engine.Start()

	assert.False(t, engine.Snapshot().Running)
	assert.Equal(t, 0, source.Pending())
}

func TestStartIsIdempotent(t *testing.T) {
	engine, source, _, _ := newTestEngine(t, model.DefaultSettings())

	engine.Start()
	engine.Start()
	engine.Start()
	assert.Equal(t, 1, source.Pending())
	assert.Equal(t, 1, source.Scheduled())

	source.Fire()
	assert.Equal(t, 1499, engine.Snapshot().Remaining, "one tick decrements once")
}

func TestStopRecordsHistoryAndKeepsRemaining(t *testing.T) {
	engine, source, _, writer := newTestEngine(t, model.DefaultSettings())

	engine.Start()
	source.FireN(100)
	engine.Stop()

	snap := engine.Snapshot()
	assert.Equal(t, 1400, snap.Remaining)
	assert.False(t, snap.Running)
	assert.Equal(t, StatePaused, snap.State)
	assert.Equal(t, []int{1400, 0, 0}, snap.History)
	assert.Equal(t, 0, source.Pending())
	require.Len(t, writer.saved, 1)
	assert.Equal(t, []int{1400, 0, 0}, writer.saved[0])

	source.FireN(10)
	assert.Equal(t, 1400, engine.Snapshot().Remaining, "no ticking while paused")
}

func TestStopWhileIdleIsIgnored(t *testing.T) {
	engine, _, _, writer := newTestEngine(t, model.DefaultSettings())

	engine.Stop()

	assert.Equal(t, []int{0, 0, 0}, engine.Snapshot().History)
	assert.Empty(t, writer.saved)
}

func TestHistoryIsBoundedAfterManyStops(t *testing.T) {
	engine, source, _, _ := newTestEngine(t, model.DefaultSettings())
	engine.ClearHistory()

	for n := 1; n <= 5; n++ {
		engine.Start()
		source.Fire()
		engine.Stop()

		values := engine.history.Values()
		assert.Len(t, values, min(n, 3))
		assert.Equal(t, 1500-n, values[0])
	}
}

func TestPauseAndResume(t *testing.T) {
	engine, source, _, _ := newTestEngine(t, model.DefaultSettings())

	engine.Start()
	source.FireN(10)
	engine.Stop()
	engine.Start()
	source.FireN(5)

	assert.Equal(t, 1485, engine.Snapshot().Remaining)
	assert.Equal(t, 1, source.Pending())
	assert.Equal(t, 2, source.Scheduled())
}

func TestResetRestoresDuration(t *testing.T) {
	engine, source, _, _ := newTestEngine(t, model.DefaultSettings())

	engine.Start()
	source.FireN(30)
	engine.Reset()

	snap := engine.Snapshot()
	assert.Equal(t, 1500, snap.Remaining)
	assert.Equal(t, 1500, snap.Total)
	assert.False(t, snap.Running)
	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, 0, source.Pending())
}

func TestChangeMode(t *testing.T) {
	engine, source, _, _ := newTestEngine(t, model.DefaultSettings())
	engine.Start()
	source.FireN(3)

	for _, mode := range model.Modes {
		engine.ChangeMode(mode)

		snap := engine.Snapshot()
		want := model.DefaultSettings().Minutes(mode) * 60
		assert.Equal(t, mode, snap.Mode)
		assert.Equal(t, want, snap.Remaining)
		assert.Equal(t, want, snap.Total)
		assert.False(t, snap.Running)
	}
	assert.Equal(t, 0, source.Pending())
}

func TestChangeMode_UnknownModePanicsWithoutChangingState(t *testing.T) {
	engine, _, _, _ := newTestEngine(t, model.DefaultSettings())

	assert.Panics(t, func() { engine.ChangeMode(model.Mode("nap")) })
	assert.Equal(t, model.ModeFocus, engine.Snapshot().Mode)
}

func TestAdjust(t *testing.T) {
	settings := model.DefaultSettings()
	settings.Pomodoro = 5
	engine, _, _, _ := newTestEngine(t, settings)

	engine.Adjust(stepping.Increase)
	assert.Equal(t, 360, engine.Snapshot().Remaining)
	assert.Equal(t, 300, engine.Snapshot().Total, "total is unaffected")
	assert.Equal(t, 0.0, engine.ProgressFraction(), "progress is clamped at zero")

	engine.Adjust(stepping.Decrease)
	assert.Equal(t, 300, engine.Snapshot().Remaining)

	engine.Adjust(stepping.Decrease)
	assert.Equal(t, 240, engine.Snapshot().Remaining)
	assert.InDelta(t, 0.2, engine.ProgressFraction(), 1e-9)
}

func TestAdjust_ClampsToBounds(t *testing.T) {
	settings := model.DefaultSettings()
	settings.Pomodoro = 60
	engine, _, _, _ := newTestEngine(t, settings)

	engine.Adjust(stepping.Increase)
	assert.Equal(t, 3600, engine.Snapshot().Remaining)

	for i := 0; i < 100; i++ {
		engine.Adjust(stepping.Decrease)
	}
	assert.Equal(t, stepping.MinSeconds, engine.Snapshot().Remaining)
}

func TestAdjust_LegacyPolicy(t *testing.T) {
	source := ticker.NewManual()
	engine := New(model.DefaultSettings(), nil, Config{Source: source, Policy: stepping.Legacy})
	t.Cleanup(engine.Close)

	engine.Adjust(stepping.Increase)
	assert.Equal(t, 1800, engine.Snapshot().Remaining)

	for i := 0; i < 10; i++ {
		engine.Adjust(stepping.Decrease)
	}
	assert.Equal(t, stepping.LegacyMinSeconds, engine.Snapshot().Remaining)
}

func TestApplySettings(t *testing.T) {
	engine, source, _, _ := newTestEngine(t, model.DefaultSettings())
	engine.Start()
	source.FireN(10)

	// Changing another mode's duration leaves the session alone.
	engine.ApplySettings(model.DefaultSettings().WithMinutes(model.ModeLongBreak, 20))
	snap := engine.Snapshot()
	assert.True(t, snap.Running)
	assert.Equal(t, 1490, snap.Remaining)

	// Changing the active mode's duration resets the countdown.
	engine.ApplySettings(engine.Settings().WithMinutes(model.ModeFocus, 30))
	snap = engine.Snapshot()
	assert.False(t, snap.Running)
	assert.Equal(t, 1800, snap.Remaining)
	assert.Equal(t, 1800, snap.Total)
	assert.Equal(t, 0, source.Pending())
	assert.Equal(t, 20, engine.Settings().LongBreak)
}

func TestProgressFraction(t *testing.T) {
	settings := model.DefaultSettings()
	settings.Pomodoro = 1
	engine, source, _, _ := newTestEngine(t, settings)

	assert.Equal(t, 0.0, engine.ProgressFraction())
	engine.Start()
	source.FireN(15)
	assert.InDelta(t, 0.25, engine.ProgressFraction(), 1e-9)
	source.FireN(45)
	assert.Equal(t, 1.0, engine.ProgressFraction())
}

func TestProgressFraction_ZeroDurationIsGuarded(t *testing.T) {
	settings := model.DefaultSettings()
	settings.Pomodoro = 0
	engine, source, _, _ := newTestEngine(t, settings)

	assert.Equal(t, 0.0, engine.ProgressFraction())
	engine.Start()
	assert.False(t, engine.Snapshot().Running)
	assert.Equal(t, 0, source.Pending())
}

func TestStaleRegistrationIsIgnored(t *testing.T) {
	source := ticker.NewManual()
	engine := New(model.DefaultSettings(), nil, Config{Source: source})
	t.Cleanup(engine.Close)

	engine.Start()
	staleGeneration := engine.generation
	engine.Stop()
	engine.Start()

	// A callback from the first registration that was already in flight.
	engine.tickFrom(staleGeneration)
	assert.Equal(t, 1500, engine.Snapshot().Remaining)

	source.Fire()
	assert.Equal(t, 1499, engine.Snapshot().Remaining)
}

func TestClearHistory(t *testing.T) {
	engine, source, _, writer := newTestEngine(t, model.DefaultSettings())
	engine.Start()
	source.Fire()
	engine.Stop()

	engine.ClearHistory()

	assert.Equal(t, []int{0, 0, 0}, engine.Snapshot().History)
	require.Len(t, writer.saved, 2)
	assert.Empty(t, writer.saved[1])
}

func TestSubscribeReceivesEvents(t *testing.T) {
	settings := model.DefaultSettings()
	settings.Pomodoro = 1
	engine, source, _, _ := newTestEngine(t, settings)
	events := engine.Subscribe(128)

	engine.Start()
	source.FireN(60)

	var types []EventType
	for len(events) > 0 {
		event := <-events
		types = append(types, event.Type)
	}

	require.NotEmpty(t, types)
	assert.Equal(t, EventStateChange, types[0])
	assert.Equal(t, EventCompleted, types[len(types)-1])
	assert.Len(t, types, 61)
}

func TestCloseClosesSubscribers(t *testing.T) {
	source := ticker.NewManual()
	engine := New(model.DefaultSettings(), nil, Config{Source: source})
	events := engine.Subscribe(1)

	engine.Start()
	engine.Close()
	engine.Close()

	_, ok := <-events
	assert.False(t, ok)
	assert.Equal(t, 0, source.Pending())

	late := engine.Subscribe(1)
	_, ok = <-late
	assert.False(t, ok)
}
