package shell

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/apptheme"
)

type fakePlatform struct {
	enabled bool
	calls   []bool
}

func (service *fakePlatform) GetConfigDir() (string, error) { return "", nil }

func (service *fakePlatform) EnableAutostart(string, string) error {
	service.enabled = true
	service.calls = append(service.calls, true)
	return nil
}

func (service *fakePlatform) DisableAutostart(string) error {
	service.enabled = false
	service.calls = append(service.calls, false)
	return nil
}

func (service *fakePlatform) AutostartEnabled(string) (bool, error) {
	return service.enabled, nil
}

type noIdle struct{}

func (noIdle) IdleDuration() (time.Duration, error) { return 0, platform.ErrIdleUnsupported }

func newTestShell(t *testing.T, store storage.Store, service *fakePlatform) *shell {
	t.Helper()
	shell := newShell(test.NewTempApp(t), Options{
		AppName:  "Pomodoro",
		Store:    store,
		Platform: service,
		Idle:     noIdle{},
	})
	t.Cleanup(shell.close)
	return shell
}

func TestShellLoadsStoredState(t *testing.T) {
	store := storage.NewMemoryStore()
	stored := model.DefaultSettings()
	stored.Pomodoro = 50
	stored.Theme = model.ThemeLight
	require.NoError(t, storage.SaveSettings(store, stored))
	require.NoError(t, storage.SaveHistory(store, storage.KeyHistory, []int{1400}))
	require.NoError(t, storage.SaveHistory(store, storage.KeyStopwatchHistory, []int{65}))

	shell := newTestShell(t, store, &fakePlatform{enabled: true})

	assert.True(t, shell.settings.LaunchAtLogin, "launch at login follows the OS")
	snapshot := shell.countdown.Snapshot()
	assert.Equal(t, 3000, snapshot.Remaining)
	assert.Equal(t, []int{1400, 0, 0}, snapshot.History)
	assert.Equal(t, []int{65}, shell.stopwatch.Snapshot().History)
	assert.Equal(t, apptheme.Accent, shell.app.Settings().Theme().Color(theme.ColorNamePrimary, theme.VariantDark))
	assert.Nil(t, shell.tray, "the test driver has no system tray")
}

func TestShellSaveSettings(t *testing.T) {
	store := storage.NewMemoryStore()
	service := &fakePlatform{}
	shell := newTestShell(t, store, service)

	updated := shell.settings
	updated.ShortBreak = 10
	updated.LaunchAtLogin = true
	updated.IdleStopEnabled = true
	shell.countdown.ChangeMode(model.ModeShortBreak)
	shell.saveSettings(updated)

	loaded, err := storage.LoadSettings(store)
	require.NoError(t, err)
	assert.Equal(t, 10, loaded.ShortBreak)
	assert.True(t, loaded.LaunchAtLogin)
	assert.Equal(t, []bool{true}, service.calls)

	assert.Equal(t, 600, shell.countdown.Snapshot().Remaining)
	assert.True(t, shell.monitor.Active())

	shell.monitor.Check()
	assert.True(t, shell.monitor.Active(), "a stopped countdown is not polled")
}

func TestShellToggleAndReset(t *testing.T) {
	shell := newTestShell(t, storage.NewMemoryStore(), &fakePlatform{})

	shell.toggleCountdown()
	assert.True(t, shell.countdown.Running())
	shell.toggleCountdown()
	assert.False(t, shell.countdown.Running())
	assert.Equal(t, 1500, shell.countdown.Snapshot().History[0])

	shell.resetCountdown()
	assert.Equal(t, 1500, shell.countdown.Snapshot().Remaining)
	assert.Equal(t, "Focus session finished", shell.completionMessage())
}
